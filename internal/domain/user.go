// Package domain contains entity without logic, just meta-data
package domain

import "strconv"

// UserID is a snowflake identity reference.
type UserID int64

func (u UserID) String() string {
	return strconv.FormatInt(int64(u), 10)
}

// ParseUserID parses the decimal form used in paths and payloads.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return UserID(v), nil
}

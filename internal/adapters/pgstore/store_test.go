package pgstore

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

func TestGetConversation(t *testing.T) {
	req := require.New(t)
	db, mock, err := sqlmock.New()
	req.NoError(err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, owner_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "owner_id"}).
			AddRow(int64(7), "group", int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).
			AddRow(int64(1)).AddRow(int64(2)))

	conv, err := New(db).GetConversation(context.Background(), 7)
	req.NoError(err)
	req.Equal(domain.ConversationID(7), conv.ID)
	req.Equal(domain.KindGroup, conv.Kind)
	req.Equal(domain.UserID(1), conv.OwnerID)
	req.Equal([]domain.UserID{1, 2}, conv.Participants)
	req.NoError(mock.ExpectationsWereMet())
}

func TestGetConversation_NotFound(t *testing.T) {
	req := require.New(t)
	db, mock, err := sqlmock.New()
	req.NoError(err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, kind, owner_id")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "owner_id"}))

	_, err = New(db).GetConversation(context.Background(), 7)
	req.ErrorIs(err, core.ErrNotFound)
	req.NoError(mock.ExpectationsWereMet())
}

func TestSaveConversation(t *testing.T) {
	req := require.New(t)
	db, mock, err := sqlmock.New()
	req.NoError(err)
	defer db.Close()

	conv := &domain.Conversation{
		ID:           7,
		Kind:         domain.KindGroup,
		OwnerID:      1,
		Participants: []domain.UserID{1, 2},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversations")).
		WithArgs(int64(7), "group", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversation_members")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversation_members")).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversation_members")).
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req.NoError(New(db).SaveConversation(context.Background(), conv))
	req.NoError(mock.ExpectationsWereMet())
}

func TestSaveConversation_RollbackOnMemberInsertFailure(t *testing.T) {
	req := require.New(t)
	db, mock, err := sqlmock.New()
	req.NoError(err)
	defer db.Close()

	conv := &domain.Conversation{ID: 7, Kind: domain.KindGroup, OwnerID: 1, Participants: []domain.UserID{1}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversations")).
		WithArgs(int64(7), "group", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM conversation_members")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO conversation_members")).
		WithArgs(int64(7), int64(1)).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	req.Error(New(db).SaveConversation(context.Background(), conv))
	req.NoError(mock.ExpectationsWereMet())
}

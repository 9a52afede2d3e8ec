// Package pgstore implements the conversation store on Postgres.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Store implements core.ConversationStore using a database/sql
// connection. Ids come from the allocator, never from the database.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects with the pq driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return New(db), nil
}

func (s *Store) GetConversation(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	query := `
		SELECT id, kind, owner_id
		FROM conversations
		WHERE id = $1
	`

	row := s.db.QueryRowContext(ctx, query, int64(id))

	var conv domain.Conversation
	var ownerID sql.NullInt64
	if err := row.Scan(&conv.ID, &conv.Kind, &ownerID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: conversation %d", core.ErrNotFound, id)
		}
		return nil, err
	}
	if ownerID.Valid {
		conv.OwnerID = domain.UserID(ownerID.Int64)
	}

	memberQuery := `
		SELECT user_id
		FROM conversation_members
		WHERE conversation_id = $1
		ORDER BY joined_at
	`

	rows, err := s.db.QueryContext(ctx, memberQuery, int64(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		conv.Participants = append(conv.Participants, domain.UserID(uid))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &conv, nil
}

func (s *Store) SaveConversation(ctx context.Context, conv *domain.Conversation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				_ = rollbackErr
			}
		}
	}()

	convUpsert := `
		INSERT INTO conversations (id, kind, owner_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET kind = $2, owner_id = $3
	`

	var owner sql.NullInt64
	if conv.OwnerID != 0 {
		owner = sql.NullInt64{Int64: int64(conv.OwnerID), Valid: true}
	}
	if _, err = tx.ExecContext(ctx, convUpsert, int64(conv.ID), string(conv.Kind), owner); err != nil {
		return err
	}

	// Membership is small per conversation; replacing the member rows
	// keeps the write path one shape for insert and update.
	if _, err = tx.ExecContext(ctx, `DELETE FROM conversation_members WHERE conversation_id = $1`, int64(conv.ID)); err != nil {
		return err
	}

	memberInsert := `
		INSERT INTO conversation_members (conversation_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
	`

	for _, uid := range conv.Participants {
		if _, err = tx.ExecContext(ctx, memberInsert, int64(conv.ID), int64(uid)); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

// JournalEntry is one submitted order as recorded locally. The remote
// store owns the order itself; the journal exists so submissions can be
// audited and reconciled later.
type JournalEntry struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Total       float64   `json:"total"`
	Extras      []byte    `json:"extras"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OrderJournal records successfully submitted orders.
type OrderJournal interface {
	Record(ctx context.Context, sessionID string, payload *models.OrderPayload) error
	BySession(ctx context.Context, sessionID string) ([]*JournalEntry, error)
}

// PostgresOrderJournal implements OrderJournal on Postgres.
type PostgresOrderJournal struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderJournal creates a Postgres-backed order journal.
func NewPostgresOrderJournal(db *sql.DB, logger *zap.Logger) *PostgresOrderJournal {
	return &PostgresOrderJournal{db: db, logger: logger}
}

// Record inserts a journal row for a submitted order.
func (j *PostgresOrderJournal) Record(ctx context.Context, sessionID string, payload *models.OrderPayload) error {
	extras, err := json.Marshal(payload.Extras)
	if err != nil {
		return err
	}

	var id int64
	err = j.db.QueryRowContext(
		ctx,
		`INSERT INTO order_journal (session_id, product_id, name, total, extras, submitted_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id`,
		sessionID, payload.ProductID, payload.Name, payload.Price, extras,
	).Scan(&id)
	if err != nil {
		j.logger.Error("Failed to journal order",
			zap.String("session_id", sessionID),
			zap.Int64("product_id", payload.ProductID),
			zap.Error(err),
		)
		return err
	}

	j.logger.Debug("Order journaled",
		zap.Int64("journal_id", id),
		zap.String("session_id", sessionID),
	)
	return nil
}

// BySession returns the journal entries recorded for a session, newest
// first.
func (j *PostgresOrderJournal) BySession(ctx context.Context, sessionID string) ([]*JournalEntry, error) {
	rows, err := j.db.QueryContext(
		ctx,
		`SELECT id, session_id, product_id, name, total, extras, submitted_at
		 FROM order_journal WHERE session_id = $1 ORDER BY id DESC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*JournalEntry
	for rows.Next() {
		var entry JournalEntry
		if err := rows.Scan(
			&entry.ID, &entry.SessionID, &entry.ProductID,
			&entry.Name, &entry.Total, &entry.Extras, &entry.SubmittedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// NopJournal discards journal writes. Used when the journal feature is
// disabled.
type NopJournal struct{}

func (NopJournal) Record(ctx context.Context, sessionID string, payload *models.OrderPayload) error {
	return nil
}

func (NopJournal) BySession(ctx context.Context, sessionID string) ([]*JournalEntry, error) {
	return nil, nil
}

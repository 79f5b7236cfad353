package question

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 30 * time.Second

const createQuestionsTable = `CREATE TABLE IF NOT EXISTS questions (
	id             TEXT PRIMARY KEY,
	text           TEXT NOT NULL,
	option_a       TEXT NOT NULL,
	option_b       TEXT NOT NULL,
	option_c       TEXT NOT NULL,
	option_d       TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	category       TEXT NOT NULL,
	explanation    TEXT NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertQuestion = `INSERT INTO questions
	(id, text, option_a, option_b, option_c, option_d, correct_answer, category, explanation, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	ON CONFLICT (id) DO UPDATE SET
		text = EXCLUDED.text,
		option_a = EXCLUDED.option_a,
		option_b = EXCLUDED.option_b,
		option_c = EXCLUDED.option_c,
		option_d = EXCLUDED.option_d,
		correct_answer = EXCLUDED.correct_answer,
		category = EXCLUDED.category,
		explanation = EXCLUDED.explanation,
		updated_at = now()`

// PostgresStore is a PostgreSQL-backed Store implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the questions table if needed and returns a store
// writing to it.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := pool.Exec(ctx, createQuestionsTable); err != nil {
		return nil, fmt.Errorf("create questions table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// SaveQuestions upserts all records in a single transaction.
func (s *PostgresStore) SaveQuestions(ctx context.Context, records []Record) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(upsertQuestion,
			Key(r.Text),
			r.Text,
			r.OptionA,
			r.OptionB,
			r.OptionC,
			r.OptionD,
			r.CorrectAnswer,
			r.Category,
			r.Explanation,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("upsert questions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit questions: %w", err)
	}
	return len(records), nil
}

// CountQuestions returns the number of stored questions, optionally limited
// to one category.
func (s *PostgresStore) CountQuestions(ctx context.Context, category string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM questions WHERE $1 = '' OR category = $1`,
		category,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

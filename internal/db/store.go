package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/profile"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		session_id      TEXT PRIMARY KEY,
		national_id     TEXT,
		full_name       TEXT,
		plan_name       TEXT,
		contract_number TEXT,
		is_active       BOOLEAN,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS turns (
		id         BIGSERIAL PRIMARY KEY,
		session_id TEXT NOT NULL,
		seq        BIGINT NOT NULL,
		role       TEXT NOT NULL,
		text       TEXT NOT NULL,
		intent     TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS turns_session_idx ON turns (session_id, id)`,
}

// Store persists session profiles and transcripts in PostgreSQL. It
// satisfies profile.Store and chat.Transcript.
type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) Get(ctx context.Context, sessionID string) (models.Profile, error) {
	var (
		nationalID, fullName, planName, contract *string
		p                                        models.Profile
	)
	err := s.Pool.QueryRow(ctx, `
		SELECT national_id, full_name, plan_name, contract_number, is_active
		FROM profiles WHERE session_id = $1
	`, sessionID).Scan(&nationalID, &fullName, &planName, &contract, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Profile{}, nil
	}
	if err != nil {
		return models.Profile{}, err
	}
	p.NationalID = derefString(nationalID)
	p.FullName = derefString(fullName)
	p.PlanName = derefString(planName)
	p.ContractNumber = derefString(contract)
	return p, nil
}

func (s *Store) Set(ctx context.Context, sessionID string, p models.Profile) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO profiles (session_id, national_id, full_name, plan_name, contract_number, is_active, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			national_id = EXCLUDED.national_id,
			full_name = EXCLUDED.full_name,
			plan_name = EXCLUDED.plan_name,
			contract_number = EXCLUDED.contract_number,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`, sessionID, nullString(p.NationalID), nullString(p.FullName), nullString(p.PlanName), nullString(p.ContractNumber), p.IsActive)
	return err
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM profiles WHERE session_id = $1`, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}

func (s *Store) Append(ctx context.Context, turns ...models.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(turns))
	for _, t := range turns {
		rows = append(rows, []any{t.SessionID, int64(t.Seq), t.Role, t.Text, nullString(t.Intent), t.CreatedAt})
	}
	_, err := s.Pool.CopyFrom(ctx, pgx.Identifier{"turns"}, []string{"session_id", "seq", "role", "text", "intent", "created_at"}, pgx.CopyFromRows(rows))
	return err
}

func (s *Store) List(ctx context.Context, sessionID string) ([]models.Turn, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT session_id, seq, role, text, intent, created_at
		FROM turns WHERE session_id = $1 ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Turn
	for rows.Next() {
		var (
			t      models.Turn
			seq    int64
			intent *string
		)
		if err := rows.Scan(&t.SessionID, &seq, &t.Role, &t.Text, &intent, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Seq = uint64(seq)
		t.Intent = derefString(intent)
		out = append(out, t)
	}
	return out, rows.Err()
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const defaultListLimit = 50

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the releases table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const releaseColumns = `release_id, repository, version, model_version, sqc, result, created_at`

func (s *PostgresStore) SaveRelease(ctx context.Context, r *Release) error {
	resultJSON, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO msgram_releases (release_id, repository, version, model_version, sqc, result)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		r.ID, r.Repository, r.Version, r.ModelVersion, r.SQC, resultJSON,
	).Scan(&r.CreatedAt)
}

func (s *PostgresStore) GetRelease(ctx context.Context, id uuid.UUID) (*Release, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+releaseColumns+`
		FROM msgram_releases WHERE release_id = $1`, id)
	r, err := scanRelease(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStore) ListReleases(ctx context.Context, filter ReleaseFilter) ([]*Release, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + releaseColumns + ` FROM msgram_releases`
	args := []any{}
	if filter.Repository != "" {
		args = append(args, filter.Repository)
		query += fmt.Sprintf(" WHERE repository = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var releases []*Release
	for rows.Next() {
		r, err := scanRelease(rows)
		if err != nil {
			return nil, err
		}
		releases = append(releases, r)
	}
	return releases, rows.Err()
}

func scanRelease(row pgx.Row) (*Release, error) {
	r := &Release{}
	var resultJSON []byte
	if err := row.Scan(&r.ID, &r.Repository, &r.Version, &r.ModelVersion, &r.SQC, &resultJSON, &r.CreatedAt); err != nil {
		return nil, err
	}
	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &r.Result); err != nil {
			return nil, fmt.Errorf("decode result of %s: %w", r.ID, err)
		}
	}
	return r, nil
}

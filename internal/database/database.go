package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const FileName = "registry.db"

type Database interface {
	CloseDBConnection() error

	UpsertImplementingService(ctx context.Context, graphID string, graphVariant string, record ServiceRecord) error
	RemoveImplementingService(ctx context.Context, graphID string, graphVariant string, name string) (bool, error)
	GetImplementingServices(ctx context.Context, graphID string, graphVariant string) ([]ServiceRecord, error)

	GetCompositionHash(ctx context.Context, graphID string, graphVariant string) (string, error)
	SetCompositionHash(ctx context.Context, graphID string, graphVariant string, schemaHash string) error

	RunMigrations(migrationsFS embed.FS, migrationsPath string) error
	GetCurrentMigrationVersion(migrationsFS embed.FS, migrationsPath string) (uint, bool, error)
	RunDownMigration(migrationsFS embed.FS, migrationsPath string) error
}

var _ Database = (*DB)(nil)

type DB struct {
	conn *sql.DB
}

// ServiceRecord is one implementing service row of a graph variant.
type ServiceRecord struct {
	Name      string
	URL       string
	Revision  string
	SDL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewDB(ctx context.Context, baseDir string) (*DB, error) {
	if err := os.MkdirAll(baseDir, 0750); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}

	db, err := openDB(ctx, filepath.Join(baseDir, FileName))
	if err != nil {
		return nil, err
	}

	if migrationsErr := db.RunMigrations(MigrationsFS, MigrationsPath); migrationsErr != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", migrationsErr)
	}
	_, dirty, err := db.GetCurrentMigrationVersion(MigrationsFS, MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("could not get schema version: %w", err)
	}
	if dirty {
		return nil, fmt.Errorf("database is in a dirty state. Manual intervention required")
	}

	return db, nil
}

func NewTestDB(ctx context.Context, dbPath string) (*DB, *sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, nil, fmt.Errorf("could not create test db directory: %w", err)
	}

	db, err := openDB(ctx, dbPath)
	if err != nil {
		return nil, nil, err
	}

	if migrationsErr := db.RunMigrations(MigrationsFS, MigrationsPath); migrationsErr != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", migrationsErr)
	}

	return db, db.conn, nil
}

func openDB(ctx context.Context, dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("error closing the connection to database: %w", closeErr)
		}
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	return &DB{conn: conn}, nil
}

func (db *DB) CloseDBConnection() error {
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	return nil
}

func (db *DB) UpsertImplementingService(ctx context.Context, graphID string, graphVariant string, record ServiceRecord) error {
	query := `
	INSERT INTO implementing_services (graph_id, graph_variant, name, url, revision, sdl, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (graph_id, graph_variant, name) DO UPDATE SET
		url = excluded.url,
		revision = excluded.revision,
		sdl = excluded.sdl,
		updated_at = excluded.updated_at
	`

	now := time.Now()
	_, err := db.conn.ExecContext(ctx, query, graphID, graphVariant, record.Name, record.URL, record.Revision, record.SDL, now, now)
	if err != nil {
		return fmt.Errorf("could not upsert implementing service %s: %w", record.Name, err)
	}
	return nil
}

func (db *DB) RemoveImplementingService(ctx context.Context, graphID string, graphVariant string, name string) (bool, error) {
	query := `
	DELETE FROM implementing_services
	WHERE graph_id = ? AND graph_variant = ? AND name = ?
	`

	result, err := db.conn.ExecContext(ctx, query, graphID, graphVariant, name)
	if err != nil {
		return false, fmt.Errorf("could not remove implementing service %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not get affected rows: %w", err)
	}

	return rowsAffected > 0, nil
}

func (db *DB) GetImplementingServices(ctx context.Context, graphID string, graphVariant string) ([]ServiceRecord, error) {
	query := `
	SELECT name, url, revision, sdl, created_at, updated_at
	FROM implementing_services
	WHERE graph_id = ? AND graph_variant = ?
	ORDER BY name
	`

	rows, err := db.conn.QueryContext(ctx, query, graphID, graphVariant)
	if err != nil {
		return nil, fmt.Errorf("could not query implementing services: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var records []ServiceRecord
	for rows.Next() {
		var record ServiceRecord
		err := rows.Scan(&record.Name, &record.URL, &record.Revision, &record.SDL, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan implementing service row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating implementing service rows: %w", err)
	}

	return records, nil
}

// GetCompositionHash returns an empty hash when the variant was never composed.
func (db *DB) GetCompositionHash(ctx context.Context, graphID string, graphVariant string) (string, error) {
	query := `
	SELECT schema_hash
	FROM gateway_compositions
	WHERE graph_id = ? AND graph_variant = ?
	`

	var schemaHash string
	err := db.conn.QueryRowContext(ctx, query, graphID, graphVariant).Scan(&schemaHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("could not scan composition row: %w", err)
	}
	return schemaHash, nil
}

func (db *DB) SetCompositionHash(ctx context.Context, graphID string, graphVariant string, schemaHash string) error {
	query := `
	INSERT OR REPLACE INTO gateway_compositions (graph_id, graph_variant, schema_hash, updated_at)
	VALUES (?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query, graphID, graphVariant, schemaHash, time.Now())
	if err != nil {
		return fmt.Errorf("could not store composition for %s@%s: %w", graphID, graphVariant, err)
	}
	return nil
}

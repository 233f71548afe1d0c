package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion must change whenever schema.sql does.
const schemaVersion = 1

// ErrSchemaMismatch is returned by Open when the archive was written by a
// different schema version.
var ErrSchemaMismatch = errors.New("archive schema version mismatch")

// migrate creates the schema on a fresh database and checks the recorded
// version on an existing one. Old archives are not upgraded in place.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.recordedVersion(ctx)
	if err != nil {
		return err
	}
	switch version {
	case schemaVersion:
		return nil
	case 0:
		return s.bootstrap(ctx)
	default:
		return fmt.Errorf("%w: %s is at version %d, this build uses %d; remove the file to start a new archive",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
}

// recordedVersion returns 0 when the archive has no schema yet.
func (s *Store) recordedVersion(ctx context.Context) (int, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("inspect archive schema: %w", err)
	}

	var version int
	err = s.db.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read archive schema version: %w", err)
	}
	return version, nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("apply archive schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
			return fmt.Errorf("reset schema version: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	})
}

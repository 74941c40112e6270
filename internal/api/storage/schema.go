package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// Migration is one forward-only schema change.
type Migration struct {
	Version     int
	Description string
	Up          string
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "create jobs table",
		Up: `
			CREATE TABLE IF NOT EXISTS jobs (
				job_id             TEXT PRIMARY KEY,
				title              TEXT NOT NULL,
				employer_id        TEXT NOT NULL,
				employer_name      TEXT NOT NULL DEFAULT '',
				location           TEXT NOT NULL DEFAULT '',
				job_type           TEXT NOT NULL,
				experience_level   TEXT NOT NULL,
				salary_min         INTEGER NOT NULL DEFAULT 0,
				salary_max         INTEGER NOT NULL DEFAULT 0,
				currency           TEXT NOT NULL DEFAULT 'NPR',
				category           TEXT NOT NULL DEFAULT '',
				description        TEXT NOT NULL DEFAULT '',
				requirements       TEXT[] NOT NULL DEFAULT '{}',
				benefits           TEXT[] NOT NULL DEFAULT '{}',
				skills             TEXT[] NOT NULL DEFAULT '{}',
				posted_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				deadline           TIMESTAMPTZ NULL,
				is_active          BOOLEAN NOT NULL DEFAULT TRUE,
				applications_count INTEGER NOT NULL DEFAULT 0 CHECK (applications_count >= 0),
				CHECK (salary_min >= 0 AND salary_min <= salary_max)
			);
			CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs (posted_at DESC, job_id DESC);
			CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs (employer_id);
		`,
	},
	{
		Version:     2,
		Description: "create applications table",
		Up: `
			CREATE TABLE IF NOT EXISTS applications (
				application_id  TEXT PRIMARY KEY,
				job_id          TEXT NOT NULL REFERENCES jobs (job_id) ON DELETE CASCADE,
				job_title       TEXT NOT NULL,
				employer_id     TEXT NOT NULL,
				employer_name   TEXT NOT NULL DEFAULT '',
				applicant_id    TEXT NOT NULL,
				applicant_name  TEXT NOT NULL DEFAULT '',
				applicant_email TEXT NOT NULL DEFAULT '',
				cover_letter    TEXT NOT NULL,
				resume          TEXT NOT NULL DEFAULT '',
				status          TEXT NOT NULL DEFAULT 'pending',
				submitted_at    TIMESTAMPTZ NOT NULL,
				updated_at      TIMESTAMPTZ NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_applications_applicant ON applications (applicant_id, submitted_at DESC);
			CREATE INDEX IF NOT EXISTS idx_applications_employer ON applications (employer_id, submitted_at DESC);
		`,
	},
	{
		Version:     3,
		Description: "track counted applications",
		Up:          `ALTER TABLE applications ADD COLUMN IF NOT EXISTS counted BOOLEAN NOT NULL DEFAULT FALSE;`,
	},
}

// Migrate applies every migration newer than the recorded schema version.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.GetContext(ctx, &current, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`,
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		s.logger.Info("Applied migration",
			slog.Int("version", m.Version),
			slog.String("description", m.Description),
		)
	}

	return nil
}

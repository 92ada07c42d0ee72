package sqlite

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/aruizmx/invitados/config"
	"github.com/aruizmx/invitados/internal/entity"

	_ "github.com/mattn/go-sqlite3"
)

func NewSqliteDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_busy_timeout=%d&_journal_mode=WAL&_foreign_keys=on&_loc=UTC",
		cfg.Path, cfg.BusyTimeout,
	)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", entity.ErrStorageUnavailable, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", entity.ErrStorageUnavailable, err)
	}

	log.Println("Successfully connected to SQLite")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	// Each statement is idempotent, so this is safe to run on every start.
	// The trigger refreshes updated_at whenever an UPDATE left it untouched;
	// the WHEN guard keeps it from firing on its own write.
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS guests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			phone TEXT,
			email TEXT,
			will_attend INTEGER NOT NULL DEFAULT 0,
			companion_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_guests_first_name ON guests(first_name)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_last_name ON guests(last_name)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_phone ON guests(phone)`,
		`CREATE INDEX IF NOT EXISTS idx_guests_email ON guests(email)`,

		`CREATE TRIGGER IF NOT EXISTS trg_guests_updated_at
		AFTER UPDATE ON guests
		FOR EACH ROW
		WHEN NEW.updated_at = OLD.updated_at
		BEGIN
			UPDATE guests
			   SET updated_at = CURRENT_TIMESTAMP
			 WHERE id = OLD.id;
		END`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

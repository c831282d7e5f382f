package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  role          TEXT        NOT NULL DEFAULT 'Associate' CHECK (role IN ('Admin', 'Associate')),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_clients",
		SQL: `CREATE TABLE IF NOT EXISTS clients (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL UNIQUE,
  phone      TEXT        NOT NULL,
  address    TEXT        NOT NULL,
  notes      TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_cases",
		SQL: `CREATE TABLE IF NOT EXISTS cases (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_title        TEXT        NOT NULL,
  case_number       TEXT        NOT NULL UNIQUE,
  client_id         UUID        NOT NULL REFERENCES clients(id),
  case_type         TEXT        NOT NULL,
  status            TEXT        NOT NULL DEFAULT 'Open' CHECK (status IN ('Open', 'In Progress', 'Pending Review', 'Closed')),
  priority          TEXT        NOT NULL DEFAULT 'Medium' CHECK (priority IN ('Low', 'Medium', 'High')),
  description       TEXT        NOT NULL,
  start_date        TIMESTAMPTZ NOT NULL DEFAULT now(),
  next_hearing_date TIMESTAMPTZ,
  assigned_to       UUID        NOT NULL REFERENCES users(id),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_tasks",
		SQL: `CREATE TABLE IF NOT EXISTS tasks (
  id                    UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id               UUID        NOT NULL REFERENCES cases(id),
  task_title            TEXT        NOT NULL,
  assigned_to           UUID        NOT NULL REFERENCES users(id),
  due_date              TIMESTAMPTZ NOT NULL,
  status                TEXT        NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Completed')),
  completion_percentage INT         NOT NULL DEFAULT 0 CHECK (completion_percentage BETWEEN 0 AND 100),
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  case_id       UUID        NOT NULL REFERENCES cases(id),
  document_name TEXT        NOT NULL,
  document_type TEXT        NOT NULL,
  status        TEXT        NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Reviewed', 'Approved')),
  storage_path  TEXT        NOT NULL UNIQUE,
  file_size     BIGINT      NOT NULL CHECK (file_size >= 0),
  content_type  TEXT        NOT NULL,
  uploaded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_cases_status_priority",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_status_priority ON cases (status, priority);`,
	},
	{
		Name: "create_index_cases_next_hearing_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_next_hearing_date ON cases (next_hearing_date);`,
	},
	{
		Name: "create_index_cases_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_created_at ON cases (created_at);`,
	},
	{
		Name: "create_index_cases_client_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_client_id ON cases (client_id);`,
	},
	{
		Name: "create_index_tasks_case_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tasks_case_id ON tasks (case_id);`,
	},
	{
		Name: "create_index_documents_case_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_case_id ON documents (case_id);`,
	},
	{
		Name: "create_index_cases_search",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_cases_search ON cases (lower(case_title), lower(case_number));`,
	},
	{
		Name: "create_index_clients_search",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_clients_search ON clients (lower(name), lower(email), phone);`,
	},
}

// EnsureMigrated checks if the 'cases' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.cases') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}

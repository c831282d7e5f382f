package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"

	"caseflow/internal/config"
	"caseflow/internal/database"
	"caseflow/internal/database/migration"
	"caseflow/internal/model"
)

// Development seeder: wipes all entity tables and loads a small fixture set
// of users, clients, cases, and tasks. Never run this against production data.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("database seeded")
}

func seed(ctx context.Context, db *sql.DB) error {
	// Child tables first to satisfy foreign keys.
	for _, table := range []string{"documents", "tasks", "cases", "clients", "users"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	users := []model.User{
		{ID: uuid.NewString(), Name: "Admin User", Email: "admin@example.com", Role: model.RoleAdmin},
		{ID: uuid.NewString(), Name: "John Doe", Email: "john@example.com", Role: model.RoleAssociate},
		{ID: uuid.NewString(), Name: "Jane Smith", Email: "jane@example.com", Role: model.RoleAssociate},
	}
	for _, u := range users {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			u.ID, u.Name, u.Email, string(hash), u.Role, now,
		); err != nil {
			return err
		}
	}

	clients := []model.Client{
		{
			ID: uuid.NewString(), Name: "Acme Corporation", Email: "contact@acme.com",
			Phone: "+1-555-0123", Address: "123 Business Ave, New York, NY 10001",
			Notes: "Corporate client specializing in technology",
		},
		{
			ID: uuid.NewString(), Name: "Robert Johnson", Email: "robert.j@email.com",
			Phone: "+1-555-0124", Address: "456 Oak Street, Los Angeles, CA 90001",
			Notes: "Individual client - personal injury case",
		},
		{
			ID: uuid.NewString(), Name: "Smith Family Trust", Email: "trust@smithfamily.com",
			Phone: "+1-555-0125", Address: "789 Pine Road, Chicago, IL 60601",
			Notes: "Estate planning and trust management",
		},
	}
	for _, c := range clients {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO clients (id, name, email, phone, address, notes, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
			c.ID, c.Name, c.Email, c.Phone, c.Address, c.Notes, now,
		); err != nil {
			return err
		}
	}

	hearing := now.Add(72 * time.Hour)
	cases := []struct {
		c       model.Case
		hearing *time.Time
	}{
		{
			c: model.Case{
				ID: uuid.NewString(), CaseTitle: "Acme Corp vs TechStart Inc", CaseNumber: "CASE-2025-001",
				ClientID: clients[0].ID, CaseType: "Intellectual Property", Status: model.CaseStatusInProgress,
				Priority: model.CasePriorityHigh, Description: "Patent infringement dispute over cloud technology",
				AssignedTo: users[1].ID,
			},
			hearing: &hearing,
		},
		{
			c: model.Case{
				ID: uuid.NewString(), CaseTitle: "Johnson Personal Injury Claim", CaseNumber: "CASE-2025-002",
				ClientID: clients[1].ID, CaseType: "Personal Injury", Status: model.CaseStatusOpen,
				Priority: model.CasePriorityMedium, Description: "Vehicle accident compensation claim",
				AssignedTo: users[2].ID,
			},
		},
		{
			c: model.Case{
				ID: uuid.NewString(), CaseTitle: "Smith Trust Administration", CaseNumber: "CASE-2025-003",
				ClientID: clients[2].ID, CaseType: "Estate Planning", Status: model.CaseStatusClosed,
				Priority: model.CasePriorityLow, Description: "Annual trust administration and filings",
				AssignedTo: users[1].ID,
			},
		},
	}
	for _, entry := range cases {
		var h any
		if entry.hearing != nil {
			h = *entry.hearing
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO cases (id, case_title, case_number, client_id, case_type, status, priority,
				description, start_date, next_hearing_date, assigned_to, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $9, $9)`,
			entry.c.ID, entry.c.CaseTitle, entry.c.CaseNumber, entry.c.ClientID, entry.c.CaseType,
			entry.c.Status, entry.c.Priority, entry.c.Description, now, h, entry.c.AssignedTo,
		); err != nil {
			return err
		}
	}

	tasks := []model.Task{
		{
			ID: uuid.NewString(), CaseID: cases[0].c.ID, TaskTitle: "Draft infringement analysis",
			AssignedTo: users[1].ID, DueDate: now.Add(7 * 24 * time.Hour),
			Status: model.TaskStatusPending, CompletionPercentage: 40,
		},
		{
			ID: uuid.NewString(), CaseID: cases[1].c.ID, TaskTitle: "Collect medical records",
			AssignedTo: users[2].ID, DueDate: now.Add(3 * 24 * time.Hour),
			Status: model.TaskStatusCompleted, CompletionPercentage: 100,
		},
	}
	for _, t := range tasks {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO tasks (id, case_id, task_title, assigned_to, due_date, status,
				completion_percentage, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
			t.ID, t.CaseID, t.TaskTitle, t.AssignedTo, t.DueDate, t.Status, t.CompletionPercentage, now,
		); err != nil {
			return err
		}
	}

	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

const clientColumns = `id, name, email, phone, address, notes, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }, c *model.Client) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// Create inserts a new client row and returns the stored record.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (id, name, email, phone, address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + clientColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	var out model.Client
	if err := scanClient(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single client by its ID.
func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var c model.Client
	if err := scanClient(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns clients using LIMIT/OFFSET pagination and a total count.
func (r *ClientPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Client], error) {
	const qCount = `SELECT COUNT(*) FROM clients`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	items, err := r.queryClients(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Client]{Items: items, Total: total}, nil
}

// Search matches the query text against name, email, and phone.
func (r *ClientPostgres) Search(ctx context.Context, query string) ([]model.Client, error) {
	const q = `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE name ILIKE $1 OR email ILIKE $1 OR phone ILIKE $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryClients(ctx, q, "%"+escapeLike(query)+"%")
}

// Update replaces the mutable fields of a client and returns the stored row.
func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, address = $5, notes = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + clientColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.Notes,
		c.UpdatedAt,
	)
	var out model.Client
	if err := scanClient(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a client by ID. Returns sql.ErrNoRows if nothing matched.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ClientPostgres) queryClients(ctx context.Context, q string, args ...any) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

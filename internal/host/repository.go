package host

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// Repository provides CRUD operations for hosts.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a host repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, title, email, department, created_at`

// Add creates a host.
func (r *Repository) Add(ctx context.Context, title, email, department string) (*Host, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("host name is required")
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO hosts (title, email, department) VALUES (?, ?, ?)",
		title, strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(department),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting host: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID returns a host by its ID. Missing hosts yield visitor.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Host, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM hosts WHERE id = ?", id)

	var h Host
	err := row.Scan(&h.ID, &h.Title, &h.Email, &h.Department, &h.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("host %d: %w", id, visitor.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying host %d: %w", id, err)
	}

	return &h, nil
}

// List returns all hosts ordered by name.
func (r *Repository) List(ctx context.Context) ([]*Host, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+selectColumns+" FROM hosts ORDER BY title COLLATE NOCASE, id")
	if err != nil {
		return nil, fmt.Errorf("listing hosts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var hosts []*Host
	for rows.Next() {
		var h Host
		if err := rows.Scan(&h.ID, &h.Title, &h.Email, &h.Department, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning host: %w", err)
		}
		hosts = append(hosts, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hosts: %w", err)
	}

	return hosts, nil
}

// Delete removes a host. Visitors referencing it keep their row with no host.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM hosts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting host: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("host %d: %w", id, visitor.ErrNotFound)
	}

	return nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

// CreateChild stores a new child profile. The caller assigns the ID.
func (r *ChildRepository) CreateChild(child *models.Child) error {
	now := time.Now().UTC()
	if child.CreatedAt.IsZero() {
		child.CreatedAt = now
	}
	if child.UpdatedAt.IsZero() {
		child.UpdatedAt = now
	}

	query := "INSERT INTO children (id, name, sex, birth_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.Exec(query,
		child.ID,
		child.Name,
		string(child.Sex),
		child.BirthDate.Format(models.DateLayout),
		child.CreatedAt,
		child.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create child: %w", err)
	}
	return nil
}

// GetChildByID retrieves a child by ID, returning nil when none exists
func (r *ChildRepository) GetChildByID(id string) (*models.Child, error) {
	query := "SELECT id, name, sex, birth_date, created_at, updated_at FROM children WHERE id = ?"
	child, err := scanChild(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// ListChildren retrieves every child ordered by name
func (r *ChildRepository) ListChildren() ([]models.Child, error) {
	query := `
		SELECT id, name, sex, birth_date, created_at, updated_at
		FROM children
		ORDER BY name ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	children := []models.Child{}
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *child)
	}
	return children, rows.Err()
}

// DeleteChild removes a child and, through cascading keys, their entries
func (r *ChildRepository) DeleteChild(id string) error {
	if _, err := r.db.Exec("DELETE FROM children WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanChild(row rowScanner) (*models.Child, error) {
	var child models.Child
	var sex, birth string
	if err := row.Scan(
		&child.ID,
		&child.Name,
		&sex,
		&birth,
		&child.CreatedAt,
		&child.UpdatedAt,
	); err != nil {
		return nil, err
	}

	birthDate, err := time.Parse(models.DateLayout, birth)
	if err != nil {
		return nil, fmt.Errorf("invalid birth date %q: %w", birth, err)
	}
	child.Sex = models.Sex(sex)
	child.BirthDate = birthDate
	return &child, nil
}

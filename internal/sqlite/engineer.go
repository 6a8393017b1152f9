package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/planlane/staffing-mcp/internal/domain/engineer"
	"github.com/planlane/staffing-mcp/internal/repository"
)

// EngineerRepository implements repository.EngineerRepository for SQLite
type EngineerRepository struct {
	db *DB
}

// NewEngineerRepository creates a new EngineerRepository
func NewEngineerRepository(db *DB) *EngineerRepository {
	return &EngineerRepository{db: db}
}

// Get retrieves an engineer by ID
func (r *EngineerRepository) Get(ctx context.Context, id string) (*engineer.Engineer, error) {
	query := `
		SELECT id, name, department, skills
		FROM engineers
		WHERE id = ?
	`

	var eng engineer.Engineer
	var skills string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&eng.ID,
		&eng.Name,
		&eng.Department,
		&skills,
	)

	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get engineer: %w", err)
	}

	if err := json.Unmarshal([]byte(skills), &eng.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills for engineer %s: %w", id, err)
	}

	return &eng, nil
}

// List retrieves all engineers ordered by name
func (r *EngineerRepository) List(ctx context.Context) ([]engineer.Engineer, error) {
	query := `
		SELECT id, name, department, skills
		FROM engineers
		ORDER BY name, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}
	defer rows.Close()

	var engineers []engineer.Engineer
	for rows.Next() {
		var eng engineer.Engineer
		var skills string
		if err := rows.Scan(&eng.ID, &eng.Name, &eng.Department, &skills); err != nil {
			return nil, fmt.Errorf("failed to scan engineer: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &eng.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for engineer %s: %w", eng.ID, err)
		}
		engineers = append(engineers, eng)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate engineers: %w", err)
	}

	return engineers, nil
}

// Insert stores an engineer, used when loading seed data
func (r *EngineerRepository) Insert(ctx context.Context, eng *engineer.Engineer) error {
	skills, err := json.Marshal(eng.Skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	query := `
		INSERT INTO engineers (id, name, department, skills)
		VALUES (?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, eng.ID, eng.Name, eng.Department, string(skills))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert engineer: %w", err)
	}

	return nil
}

package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/injaz-app/injaz/pkg/core"
)

// CreateProject inserts a new project, assigning an id when absent.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *core.Project) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if p.ID == "" {
		p.ID = generateID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, project_type, villa_category, contract_type, internal_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name,
		string(p.Classification.ProjectType),
		string(p.Classification.VillaCategory),
		string(p.Classification.ContractType),
		p.Classification.InternalCode,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

// GetProject returns a project by id, or (nil, nil) when absent.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*core.Project, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, project_type, villa_category, contract_type, internal_code, created_at, updated_at
		FROM projects WHERE id = ?`, id)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// ListProjects returns all projects ordered by creation time.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*core.Project, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, project_type, villa_category, contract_type, internal_code, created_at, updated_at
		FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var out []*core.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PatchClassification updates only the classification fields of a
// project. Empty fields in c overwrite: the caller sends the full
// classification as currently selected.
func (s *SQLiteStore) PatchClassification(ctx context.Context, projectID string, c core.Classification) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects
		SET project_type = ?, villa_category = ?, contract_type = ?, internal_code = ?, updated_at = ?
		WHERE id = ?`,
		string(c.ProjectType), string(c.VillaCategory), string(c.ContractType), c.InternalCode,
		formatTime(time.Now().UTC()), projectID,
	)
	if err != nil {
		return fmt.Errorf("failed to patch classification: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("project %s not found", projectID)
	}
	return nil
}

// DeleteProject removes a project and, via foreign keys, its dependent
// records.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*core.Project, error) {
	var p core.Project
	var projectType, villaCategory, contractType, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Name, &projectType, &villaCategory, &contractType,
		&p.Classification.InternalCode, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Classification.ProjectType = core.ProjectType(projectType)
	p.Classification.VillaCategory = core.VillaCategory(villaCategory)
	p.Classification.ContractType = core.ContractType(contractType)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatTimePtr(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

func parseTimeNull(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	return parseTime(s.String)
}

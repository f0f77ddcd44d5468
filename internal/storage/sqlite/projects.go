package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/models"
)

// CreateProject persists a new project owned by the given user.
func (s *Store) CreateProject(ctx context.Context, userID int64, title, description string) (models.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Project{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO projects(user_id, title, description) VALUES(?, ?, ?)`,
		userID, title, strings.TrimSpace(description))
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, id, userID)
}

// ListProjects retrieves all projects owned by the user in insertion order.
func (s *Store) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, title, description, created_at
        FROM projects WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject fetches a single project, but only when it belongs to the
// requesting user. Absence and foreign ownership both come back as
// ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id, userID int64) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx, `SELECT id, user_id, title, description, created_at
        FROM projects WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// DeleteProject removes an owned project along with all of its tasks.
func (s *Store) DeleteProject(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectProgress aggregates task counts for a project in one query.
func (s *Store) ProjectProgress(ctx context.Context, projectID int64) (models.Progress, error) {
	var total, completed int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(completed), 0)
        FROM tasks WHERE project_id = ?`, projectID).Scan(&total, &completed)
	if err != nil {
		return models.Progress{}, fmt.Errorf("project progress: %w", err)
	}
	return models.NewProgress(total, completed), nil
}

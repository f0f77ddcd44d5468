package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/models"
)

// CreateTask inserts a new task after verifying that the parent project
// belongs to the requesting user. The ownership check and the insert run in
// one transaction.
func (s *Store) CreateTask(ctx context.Context, projectID, userID int64, t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return models.Task{}, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if !t.DueDate.AfterToday() {
		return models.Task{}, fmt.Errorf("%w: due date must be in the future", ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := projectOwned(ctx, tx, projectID, userID); err != nil {
		return models.Task{}, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO tasks(project_id, title, description, due_date) VALUES(?, ?, ?, ?)`,
		projectID, t.Title, strings.TrimSpace(t.Description), t.DueDate)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}

	created, err := getTask(ctx, tx, id)
	if err != nil {
		return models.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// ListTasks returns all tasks of an owned project in insertion order.
func (s *Store) ListTasks(ctx context.Context, projectID, userID int64) ([]models.Task, error) {
	if _, err := s.GetProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, project_id, title, description, due_date, completed, created_at
        FROM tasks WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ToggleTask flips a task's completion flag and returns the updated task.
// The read-modify-write runs in a single transaction.
func (s *Store) ToggleTask(ctx context.Context, taskID, userID int64) (models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	t, err := getTaskOwned(ctx, tx, taskID, userID)
	if err != nil {
		return models.Task{}, err
	}

	t.Completed = !t.Completed
	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, t.Completed, t.ID); err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// DeleteTask removes a task after the transitive ownership check.
func (s *Store) DeleteTask(ctx context.Context, taskID, userID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	t, err := getTaskOwned(ctx, tx, taskID, userID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return tx.Commit()
}

// getTaskOwned fetches a task and resolves its owner through the parent
// project. The owner is never stored on the task row, so the check is an
// explicit two-hop lookup: task first, then the project's user.
func getTaskOwned(ctx context.Context, tx *sql.Tx, taskID, userID int64) (models.Task, error) {
	t, err := getTask(ctx, tx, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if err := projectOwned(ctx, tx, t.ProjectID, userID); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func getTask(ctx context.Context, tx *sql.Tx, id int64) (models.Task, error) {
	var t models.Task
	err := tx.QueryRowContext(ctx, `SELECT id, project_id, title, description, due_date, completed, created_at
        FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func projectOwned(ctx context.Context, tx *sql.Tx, projectID, userID int64) error {
	var owner int64
	err := tx.QueryRowContext(ctx, `SELECT user_id FROM projects WHERE id = ?`, projectID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("project owner: %w", err)
	}
	if owner != userID {
		return ErrNotFound
	}
	return nil
}

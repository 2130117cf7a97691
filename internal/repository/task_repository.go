package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// TaskRepository defines persistence access for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	CreateBatch(ctx context.Context, tasks []*domain.Task) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	CountByStatus(ctx context.Context, projectID string) (map[domain.TaskStatus]int64, error)
	ArchiveCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (project_id, title, status, created_by)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		task.ProjectID,
		task.Title,
		task.Status,
		task.CreatedBy,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

// CreateBatch inserts a chunk of tasks in one round trip.
func (r *taskRepository) CreateBatch(ctx context.Context, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	const query = `
        INSERT INTO tasks (project_id, title, status, created_by)
        VALUES ($1, $2, $3, $4)`

	batch := &pgx.Batch{}
	for _, task := range tasks {
		batch.Queue(query, task.ProjectID, task.Title, task.Status, task.CreatedBy)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range tasks {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	const query = `
        SELECT id, project_id, title, status, created_by, created_at, updated_at
        FROM tasks WHERE project_id=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.ProjectID,
			&task.Title,
			&task.Status,
			&task.CreatedBy,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) CountByStatus(ctx context.Context, projectID string) (map[domain.TaskStatus]int64, error) {
	const query = `
        SELECT status, COUNT(*) FROM tasks WHERE project_id=$1 GROUP BY status`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int64)
	for rows.Next() {
		var status domain.TaskStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// ArchiveCompletedBefore flips completed tasks older than cutoff to ARCHIVED
// and reports how many rows changed.
func (r *taskRepository) ArchiveCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `
        UPDATE tasks SET status=$1, updated_at=NOW()
        WHERE status=$2 AND created_at < $3`

	cmd, err := r.pool.Exec(ctx, query, domain.TaskStatusArchived, domain.TaskStatusCompleted, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

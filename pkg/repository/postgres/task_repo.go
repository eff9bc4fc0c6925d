package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/taskboard/pkg/task"
)

// TaskRepository хранит задачи; читающие запросы подтягивают автора из users.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) (*TaskRepository, error) {
	r := &TaskRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *TaskRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS tasks (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'PENDING',
	priority TEXT NOT NULL DEFAULT 'MEDIUM',
	created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at DESC);
`)
	return err
}

const taskColumns = `
t.id, t.title, t.description, t.status, t.priority, t.created_at, t.updated_at,
u.id, u.name, u.email
`

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO tasks (id, title, description, status, priority, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, t.ID, t.Title, t.Description, string(t.Status), string(t.Priority), t.CreatedBy.ID, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+taskColumns+`
FROM tasks t JOIN users u ON u.id = t.created_by
WHERE t.id = $1
`, id)
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, f task.Filter, limit, offset int) ([]task.Task, int, error) {
	if limit <= 0 {
		limit = 10
	}
	where := ``
	args := []any{limit, offset}
	if f.Status != "" {
		where = `WHERE t.status = $3`
		args = append(args, string(f.Status))
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+taskColumns+`, COUNT(*) OVER() AS total
FROM tasks t JOIN users u ON u.id = t.created_by
`+where+`
ORDER BY t.created_at DESC
LIMIT $1 OFFSET $2
`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var res []task.Task
	total := 0
	for rows.Next() {
		var t task.Task
		var status, priority string
		var created, updated time.Time
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &created, &updated,
			&t.CreatedBy.ID, &t.CreatedBy.Name, &t.CreatedBy.Email, &total); err != nil {
			return nil, 0, err
		}
		t.Status = task.Status(status)
		t.Priority = task.Priority(priority)
		t.CreatedAt = created.UTC()
		t.UpdatedAt = updated.UTC()
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	// Страница может оказаться за пределами набора: тогда total из окна
	// недоступен, добираем отдельным запросом.
	if len(res) == 0 {
		if err := r.countTotal(ctx, f, &total); err != nil {
			return nil, 0, err
		}
	}
	return res, total, nil
}

func (r *TaskRepository) countTotal(ctx context.Context, f task.Filter, total *int) error {
	if f.Status != "" {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, string(f.Status)).Scan(total)
	}
	return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(total)
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, u task.Update) (task.Task, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE tasks SET
	title       = COALESCE($2, title),
	description = COALESCE($3, description),
	status      = COALESCE($4, status),
	priority    = COALESCE($5, priority),
	updated_at  = $6
WHERE id = $1
`, id, u.Title, u.Description, statusArg(u.Status), priorityArg(u.Priority), time.Now().UTC())
	if err != nil {
		return task.Task{}, err
	}
	if cmd.RowsAffected() == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

// nil-able enum args: pgx needs *string, not *task.Status
func statusArg(s *task.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func priorityArg(p *task.Priority) *string {
	if p == nil {
		return nil
	}
	v := string(*p)
	return &v
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	var status, priority string
	var created, updated time.Time
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &created, &updated,
		&t.CreatedBy.ID, &t.CreatedBy.Name, &t.CreatedBy.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrNotFound
		}
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	t.CreatedAt = created.UTC()
	t.UpdatedAt = updated.UTC()
	return t, nil
}

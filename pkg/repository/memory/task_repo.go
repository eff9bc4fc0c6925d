package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/taskboard/pkg/task"
)

// TaskRepository implements task.Repository on a map. Creator details are
// resolved through the user repository on reads, mirroring what the SQL
// adapter does with a join.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]task.Task
	users *UserRepository
}

func NewTaskRepository(users *UserRepository) *TaskRepository {
	return &TaskRepository{
		tasks: make(map[uuid.UUID]task.Task),
		users: users,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = t
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	r.mu.RLock()
	t, ok := r.tasks[id]
	r.mu.RUnlock()
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	return r.withCreator(ctx, t), nil
}

func (r *TaskRepository) List(ctx context.Context, f task.Filter, limit, offset int) ([]task.Task, int, error) {
	r.mu.RLock()
	var all []task.Task
	for _, t := range r.tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		all = append(all, t)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]task.Task, 0, end-offset)
	for _, t := range all[offset:end] {
		page = append(page, r.withCreator(ctx, t))
	}
	return page, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, id uuid.UUID, u task.Update) (task.Task, error) {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if !ok {
		r.mu.Unlock()
		return task.Task{}, task.ErrNotFound
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	t.UpdatedAt = time.Now().UTC()
	r.tasks[id] = t
	r.mu.Unlock()
	return r.withCreator(ctx, t), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return task.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) withCreator(ctx context.Context, t task.Task) task.Task {
	if r.users == nil {
		return t
	}
	if user, err := r.users.GetByID(ctx, t.CreatedBy.ID); err == nil {
		t.CreatedBy.Name = user.Name
		t.CreatedBy.Email = user.Email
	}
	return t
}

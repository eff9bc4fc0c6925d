package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the closed task lifecycle set.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus validates an inbound status string; empty falls back to
// StatusPending.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), true
	case "":
		return StatusPending, true
	default:
		return "", false
	}
}

// Priority is the closed task priority set.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority validates an inbound priority string; empty falls back to
// PriorityMedium.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	case "":
		return PriorityMedium, true
	default:
		return "", false
	}
}

// Creator is the denormalized view of the user who created a task,
// joined in by the repository for read paths.
type Creator struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Task is the board item managed over the REST API.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedBy   Creator   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Update carries the mutable fields of a task. Nil means "leave as is".
type Update struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

// Filter narrows List results. Zero Status means no status filter.
type Filter struct {
	Status Status
}

// Pagination describes the slice of the full result set that was returned.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Page is one page of tasks ordered by creation time descending.
type Page struct {
	Tasks      []Task     `json:"tasks"`
	Pagination Pagination `json:"pagination"`
}

var ErrNotFound = errors.New("task not found")

// Repository is the persistence port for tasks.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Task, int, error)
	Update(ctx context.Context, id uuid.UUID, u Update) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

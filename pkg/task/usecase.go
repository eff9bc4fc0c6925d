package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	titleMinLen = 3
	titleMaxLen = 100
	descMaxLen  = 500

	defaultPageSize = 10
	maxPageSize     = 100
)

// UseCase инкапсулирует приложение для работы с задачами.
type UseCase interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	List(ctx context.Context, f Filter, page, limit int) (Page, error)
	Update(ctx context.Context, id uuid.UUID, u Update) (Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, t Task) (Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	if err := validateTitle(t.Title); err != nil {
		return Task{}, err
	}
	if len(t.Description) > descMaxLen {
		return Task{}, ErrValidation(fmt.Sprintf("description cannot exceed %d characters", descMaxLen))
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return s.repo.GetByID(ctx, t.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter, page, limit int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	tasks, total, err := s.repo.List(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return Page{}, err
	}
	totalPages := (total + limit - 1) / limit
	if tasks == nil {
		tasks = []Task{}
	}
	return Page{
		Tasks: tasks,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, u Update) (Task, error) {
	if u.Title != nil {
		trimmed := strings.TrimSpace(*u.Title)
		if err := validateTitle(trimmed); err != nil {
			return Task{}, err
		}
		u.Title = &trimmed
	}
	if u.Description != nil {
		trimmed := strings.TrimSpace(*u.Description)
		if len(trimmed) > descMaxLen {
			return Task{}, ErrValidation(fmt.Sprintf("description cannot exceed %d characters", descMaxLen))
		}
		u.Description = &trimmed
	}
	return s.repo.Update(ctx, id, u)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateTitle(title string) error {
	if len(title) < titleMinLen || len(title) > titleMaxLen {
		return ErrValidation(fmt.Sprintf("title must be between %d and %d characters", titleMinLen, titleMaxLen))
	}
	return nil
}

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

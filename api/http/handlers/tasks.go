package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/taskboard/api/http/presenter"
	"github.com/artem13815/taskboard/pkg/security/jwt"
	"github.com/artem13815/taskboard/pkg/task"
)

type TaskHandler struct {
	uc task.UseCase
}

func NewTaskHandler(uc task.UseCase) *TaskHandler { return &TaskHandler{uc: uc} }

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// @Summary Создать задачу
// @Description Создаёт задачу; доступно только администраторам.
// @Tags        Задачи
// @Accept      json
// @Produce     json
// @Param       input body createTaskRequest true "Данные задачи"
// @Security    BearerAuth
// @Success     201 {object} presenter.SuccessResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     403 {object} presenter.ErrorResponse
// @Router      /tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFrom(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, presenter.CodeUnauthorized, "authentication required")
	}
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid JSON payload")
	}
	status, ok := task.ParseStatus(req.Status)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "status must be PENDING, IN_PROGRESS, or COMPLETED")
	}
	priority, ok := task.ParsePriority(req.Priority)
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "priority must be LOW, MEDIUM, or HIGH")
	}
	created, err := h.uc.Create(c.Context(), task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		CreatedBy:   task.Creator{ID: identity.UserID, Name: identity.Name, Email: identity.Email},
	})
	if err != nil {
		var verr task.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to create task")
	}
	return presenter.Success(c, http.StatusCreated, "task created successfully", fiber.Map{"task": created})
}

// @Summary Список задач
// @Description Постраничный список задач, отсортированный по дате создания.
// @Tags    Задачи
// @Produce json
// @Param   page   query int    false "Номер страницы (с 1)"
// @Param   limit  query int    false "Размер страницы (до 100)"
// @Param   status query string false "Фильтр по статусу"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	page, limit := parsePageLimit(c)
	status, ok := task.ParseStatus(c.Query("status"))
	if !ok {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "status must be PENDING, IN_PROGRESS, or COMPLETED")
	}
	filter := task.Filter{}
	if c.Query("status") != "" {
		filter.Status = status
	}
	result, err := h.uc.List(c.Context(), filter, page, limit)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to list tasks")
	}
	return presenter.Success(c, http.StatusOK, "tasks retrieved successfully", result)
}

// @Summary Получить задачу по ID
// @Tags    Задачи
// @Produce json
// @Param   id path string true "ID задачи (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid task ID")
	}
	t, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, presenter.CodeTaskNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to load task")
	}
	return presenter.Success(c, http.StatusOK, "task retrieved successfully", fiber.Map{"task": t})
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// @Summary Обновить задачу
// @Description Частичное обновление; доступно только администраторам.
// @Tags    Задачи
// @Accept  json
// @Produce json
// @Param   id path string true "ID задачи (UUID)"
// @Param   input body updateTaskRequest true "Изменяемые поля"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid task ID")
	}
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid JSON payload")
	}
	upd := task.Update{Title: req.Title, Description: req.Description}
	if req.Status != nil {
		status, ok := task.ParseStatus(*req.Status)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "status must be PENDING, IN_PROGRESS, or COMPLETED")
		}
		upd.Status = &status
	}
	if req.Priority != nil {
		priority, ok := task.ParsePriority(*req.Priority)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "priority must be LOW, MEDIUM, or HIGH")
		}
		upd.Priority = &priority
	}
	t, err := h.uc.Update(c.Context(), id, upd)
	if err != nil {
		var verr task.ErrValidation
		switch {
		case errors.Is(err, task.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, presenter.CodeTaskNotFound, "task not found")
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, verr.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to update task")
		}
	}
	return presenter.Success(c, http.StatusOK, "task updated successfully", fiber.Map{"task": t})
}

// @Summary Удалить задачу
// @Description Доступно только администраторам.
// @Tags    Задачи
// @Produce json
// @Param   id path string true "ID задачи (UUID)"
// @Security BearerAuth
// @Success 200 {object} presenter.SuccessResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.CodeValidation, "invalid task ID")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, presenter.CodeTaskNotFound, "task not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.CodeServerError, "failed to delete task")
	}
	return presenter.Success(c, http.StatusOK, "task deleted successfully", nil)
}

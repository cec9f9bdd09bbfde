package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// IdempotencyKeyHeader lets clients retry task creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// TaskHandler handles HTTP requests for task operations. Every route sits
// behind the auth middleware.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List returns every task of the caller.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /task [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create stores a task owned by the caller.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createTaskRequest  true   "Task details"
// @Success      200              {object}  domain.Task
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		OwnerID:        userID,
		Title:          *req.Title,
		Description:    *req.Description,
		EndTime:        req.EndTime,
		ReminderTime:   req.ReminderTime,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Get returns one task of the caller.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  domain.Task
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /task/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	task, err := h.service.GetByID(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Update applies a partial update and returns the updated task.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change (at least one)"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /task/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateByID(c.Request().Context(), c.Param("id"), userID, req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete removes a task and reports whether it existed.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {boolean}  bool
// @Failure      401  {object}  errorResponse
// @Router       /task/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteByID(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}

func (r updateTaskRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:        r.Title,
		Description:  r.Description,
		EndTime:      r.EndTime,
		ReminderTime: r.ReminderTime,
		IsCompleted:  r.IsCompleted,
	}
}

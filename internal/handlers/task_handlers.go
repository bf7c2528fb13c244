package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskmanager/internal/handlers/dto"
	"taskmanager/internal/logger"
	"taskmanager/internal/models"
	"taskmanager/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks TaskService
	users UserService
}

func NewTaskHandler(tasks TaskService, users UserService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		users: users,
	}
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.GetAllTasks(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, h.resolveUsers(r, tasks)))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	task, err := h.tasks.GetTaskByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTask(task, h.assignedUser(r, task)))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed request body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := validateRequest(request); fields != nil {
		logger.Warn("HTTP: validation failed", zap.Any("fields", fields))
		responseWithFields(w, http.StatusBadRequest, fields)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), request.Description, request.DueDate, request.AssignedUserID, request.State)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.Int("task_id", task.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))
	responseWithJSON(w, http.StatusCreated, dto.FromTask(task, h.assignedUser(r, task)))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: malformed request body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if fields := validateRequest(request); fields != nil {
		logger.Warn("HTTP: validation failed", zap.Any("fields", fields))
		responseWithFields(w, http.StatusBadRequest, fields)
		return
	}

	// Only fields present in the request become options; everything
	// else keeps its stored value.
	options := []service.TaskOption{}
	if request.Description != nil {
		options = append(options, service.WithDescription(*request.Description))
	}
	if request.DueDate != nil {
		options = append(options, service.WithDueDate(*request.DueDate))
	}
	if request.AssignedUserID != nil {
		options = append(options, service.WithAssignedUser(*request.AssignedUserID))
	}
	if request.State != nil {
		options = append(options, service.WithState(*request.State))
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, options...)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTask(task, h.assignedUser(r, task)))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "taskId")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) GetTasksForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	tasks, err := h.tasks.GetTasksForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, h.resolveUsers(r, tasks)))
}

func (h *TaskHandler) GetTasksByState(w http.ResponseWriter, r *http.Request) {
	state := models.TaskState(chi.URLParam(r, "state"))

	tasks, err := h.tasks.GetTasksByState(r.Context(), state)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, h.resolveUsers(r, tasks)))
}

func (h *TaskHandler) GetTasksByDueDate(w http.ResponseWriter, r *http.Request) {
	dueDate, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		logger.Warn("HTTP: invalid date parameter",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "date must look like 2006-01-02")
		return
	}

	tasks, err := h.tasks.GetTasksByDueDate(r.Context(), dueDate)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks, h.resolveUsers(r, tasks)))
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.tasks.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: health check failed", err)
		responseWithError(w, http.StatusServiceUnavailable, "unhealthy")
		return
	}
	responseWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// assignedUser resolves the referenced user for a single response.
// Resolution failures degrade to an id-less response rather than
// failing the whole request.
func (h *TaskHandler) assignedUser(r *http.Request, task *models.Task) *models.AppUser {
	if task.AssignedUserID == nil {
		return nil
	}
	user, err := h.users.GetUserByID(r.Context(), *task.AssignedUserID)
	if err != nil {
		logger.Warn("HTTP: failed to resolve assigned user",
			zap.Int("user_id", *task.AssignedUserID),
			zap.Error(err))
		return nil
	}
	return user
}

func (h *TaskHandler) resolveUsers(r *http.Request, tasks []*models.Task) map[int]*models.AppUser {
	users := map[int]*models.AppUser{}
	for _, task := range tasks {
		if task.AssignedUserID == nil {
			continue
		}
		if _, seen := users[*task.AssignedUserID]; seen {
			continue
		}
		if user := h.assignedUser(r, task); user != nil {
			users[user.ID] = user
		}
	}
	return users
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		logger.Warn("HTTP: invalid id parameter",
			zap.String("param", name),
			zap.String("value", raw),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

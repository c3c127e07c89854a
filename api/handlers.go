/*
handlers.go - HTTP API handlers for the household chore schedule

PURPOSE:
  Exposes the chores service via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the service.

ENDPOINTS:
  Tasks:
    GET    /api/tasks                    List tasks in schedule order
    POST   /api/tasks                    Create task (id generated when empty)
    GET    /api/tasks/{id}               Get task
    PUT    /api/tasks/{id}               Replace task
    DELETE /api/tasks/{id}               Delete task and its completion

  Completions & rescheduling:
    POST   /api/tasks/{id}/toggle        Mark done / undone on a date
    POST   /api/tasks/{id}/reschedule    Move one occurrence
    DELETE /api/tasks/{id}/reschedules/{key}  Drop one cycle's override
    POST   /api/tasks/{id}/anchor        Realign all future cycles
    GET    /api/tasks/{id}/period?date=  Cycle containing a date
    GET    /api/completions              Completion log

  Views:
    GET    /api/agenda?date=             Day agenda (default today)
    GET    /api/calendar?year=&month=    Month summary (default this month)
    GET    /api/upcoming                 Every task by next due date

  Household:
    GET    /api/users, PUT /api/users    Household members
    GET    /api/frequencies              Frequency presets
    GET    /api/categories               Categories in agenda order
    GET    /api/export, POST /api/import Whole-household JSON

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Service: schedule operations
  - Tasks:   TaskJSON conversion

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, unknown user
  - 404: Task not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Starter schedule loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/factory"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// maxBodyBytes bounds request bodies, imports included.
const maxBodyBytes = 4 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *chores.Service
	Tasks   *factory.TaskFactory

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler around the service.
func NewHandler(svc *chores.Service) *Handler {
	return &Handler{
		Service: svc,
		Tasks:   factory.NewTaskFactory(),
	}
}

// =============================================================================
// TASK HANDLERS
// =============================================================================

// ListTasks returns all tasks in schedule order.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTOs(snap.Tasks))
}

// GetTask returns a single task.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.Service.Task(r.Context(), taskID(r))
	if err != nil {
		writeServiceError(w, "Failed to get task", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTO(task))
}

// CreateTask creates a task from the stored record shape.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req factory.TaskJSON
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.Service.AddTask(r.Context(), h.Tasks.FromJSON(req))
	if err != nil {
		writeServiceError(w, "Failed to create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toTaskDTO(task))
}

// UpdateTask replaces a task. The id in the path wins over the body.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req factory.TaskJSON
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = string(taskID(r))

	task, err := h.Service.UpdateTask(r.Context(), h.Tasks.FromJSON(req))
	if err != nil {
		writeServiceError(w, "Failed to update task", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTO(task))
}

// DeleteTask removes a task.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTask(r.Context(), taskID(r)); err != nil {
		writeServiceError(w, "Failed to delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// COMPLETION HANDLERS
// =============================================================================

// ToggleCompletion marks a task done on a date, or clears it if already done then.
func (h *Handler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := h.parseDate(w, req.Date, "date")
	if !ok {
		return
	}

	id := taskID(r)
	done, err := h.Service.ToggleCompletion(r.Context(), id, date, req.Actor)
	if err != nil {
		writeServiceError(w, "Failed to toggle completion", err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{TaskID: string(id), Date: date.String(), Completed: done})
}

// ListCompletions returns the completion log keyed by task id.
func (h *Handler) ListCompletions(w http.ResponseWriter, r *http.Request) {
	completions, err := h.Service.Completions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load completions", err)
		return
	}

	dtos := make(map[string]CompletionDTO, len(completions))
	for id, c := range completions {
		dtos[string(id)] = CompletionDTO{Date: c.Date.String(), User: c.Actor}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RESCHEDULING HANDLERS
// =============================================================================

// RescheduleTask moves the occurrence in the cycle of From to To.
func (h *Handler) RescheduleTask(w http.ResponseWriter, r *http.Request) {
	var req RescheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	from, ok := recurrence.ParseDate(req.From)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", nil)
		return
	}
	to, ok := recurrence.ParseDate(req.To)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", nil)
		return
	}

	task, err := h.Service.Reschedule(r.Context(), taskID(r), from, to)
	if err != nil {
		writeServiceError(w, "Failed to reschedule task", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTO(task))
}

// ClearReschedule drops the override stored under a period key.
func (h *Handler) ClearReschedule(w http.ResponseWriter, r *http.Request) {
	task, err := h.Service.ClearOverride(r.Context(), taskID(r), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, "Failed to clear reschedule", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTO(task))
}

// SetAnchor realigns all future cycles of a task. An empty date clears the anchor.
func (h *Handler) SetAnchor(w http.ResponseWriter, r *http.Request) {
	var req AnchorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var date recurrence.Date
	if req.Date != "" {
		var ok bool
		if date, ok = recurrence.ParseDate(req.Date); !ok {
			writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", nil)
			return
		}
	}

	task, err := h.Service.SetAnchor(r.Context(), taskID(r), date)
	if err != nil {
		writeServiceError(w, "Failed to set anchor", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toTaskDTO(task))
}

// GetPeriod returns the cycle a date belongs to for a task.
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r.URL.Query().Get("date"), "date")
	if !ok {
		return
	}

	id := taskID(r)
	key, cycle, err := h.Service.PeriodOf(r.Context(), id, date)
	if err != nil {
		writeServiceError(w, "Failed to resolve period", err)
		return
	}
	dto := PeriodDTO{
		TaskID:    string(id),
		Date:      date.String(),
		PeriodKey: key,
		Start:     cycle.Start.String(),
		End:       cycle.End.String(),
	}
	if task, err := h.Service.Task(r.Context(), id); err == nil {
		if moved, ok := task.Override(key); ok {
			dto.Override = moved.String()
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// VIEW HANDLERS
// =============================================================================

// GetAgenda returns the day agenda.
func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDate(w, r.URL.Query().Get("date"), "date")
	if !ok {
		return
	}

	agenda, err := h.Service.Agenda(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build agenda", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toAgendaDTO(agenda))
}

// GetCalendar returns per-day due/done counts for a month.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	today := h.Service.Today()
	year, month := today.Year(), today.Month()

	q := r.URL.Query()
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 || y > 9999 {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = y
	}
	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusBadRequest, "Invalid month (1-12)", err)
			return
		}
		month = time.Month(m)
	}

	days, err := h.Service.Month(r.Context(), year, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarDTOs(days))
}

// GetUpcoming returns every task ordered by next due date.
func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Upcoming(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list upcoming tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, h.toUpcomingDTOs(rows))
}

// =============================================================================
// HOUSEHOLD HANDLERS
// =============================================================================

// ListUsers returns household members.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Users(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// SaveUsers replaces household members.
func (h *Handler) SaveUsers(w http.ResponseWriter, r *http.Request) {
	var req []chores.User
	if !decodeBody(w, r, &req) {
		return
	}
	users, err := h.Service.SaveUsers(r.Context(), req)
	if err != nil {
		writeServiceError(w, "Failed to save users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ListFrequencies returns the preset frequencies in display order.
func (h *Handler) ListFrequencies(w http.ResponseWriter, r *http.Request) {
	dtos := make([]FrequencyOptionDTO, 0, len(chores.PresetOptions))
	for _, tag := range chores.PresetOptions {
		f := chores.PresetFrequency(tag, chores.FrequencyFields{})
		dtos = append(dtos, FrequencyOptionDTO{
			Tag:         string(tag),
			Label:       chores.Label(f),
			Color:       chores.Color(f),
			UsesWeekday: chores.UsesWeekday(f),
			UsesNudge:   chores.UsesNudge(f),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCategories returns categories in agenda order.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	dtos := make([]CategoryDTO, len(chores.CategoryOrder))
	for i, c := range chores.CategoryOrder {
		dtos[i] = CategoryDTO{Name: c, Color: chores.CategoryColor(c)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Export returns the whole household in the import format.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := h.Service.Snapshot(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}
	users, err := h.Service.Users(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}

	data, err := h.Tasks.EncodeHousehold(factory.Household{Tasks: snap.Tasks, Completions: snap.Completions, Users: users})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="household.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the schedule (and users, if present) from a household export.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}
	household, err := h.Tasks.ParseHousehold(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid household JSON", err)
		return
	}
	if err := h.applyHousehold(r, household); err != nil {
		writeServiceError(w, "Failed to import", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"tasks": len(household.Tasks), "completions": len(household.Completions)})
}

func (h *Handler) applyHousehold(r *http.Request, household factory.Household) error {
	ctx := r.Context()
	if err := h.Service.ReplaceSchedule(ctx, household.Tasks, household.Completions); err != nil {
		return err
	}
	if len(household.Users) > 0 {
		if _, err := h.Service.SaveUsers(ctx, household.Users); err != nil {
			return err
		}
	}
	return nil
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func taskID(r *http.Request) recurrence.TaskID {
	return recurrence.TaskID(chi.URLParam(r, "id"))
}

// parseDate reads a YYYY-MM-DD value, defaulting to today when empty.
// On failure it writes a 400 and returns false.
func (h *Handler) parseDate(w http.ResponseWriter, s, field string) (recurrence.Date, bool) {
	if s == "" {
		return h.Service.Today(), true
	}
	d, ok := recurrence.ParseDate(s)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s format (use YYYY-MM-DD)", field), nil)
		return recurrence.Date{}, false
	}
	return d, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps chores errors onto status codes.
func writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case chores.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Task not found", err)
	case chores.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Task bodies use the
  same shape the household front end stores (factory.TaskJSON), so a task
  fetched from the API can be PUT back unchanged.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Tasks:
    TaskDTO (wraps factory.TaskJSON)

  Completions:
    ToggleRequest, ToggleResponse, CompletionDTO

  Rescheduling:
    RescheduleRequest, AnchorRequest, PeriodDTO

  Views:
    AgendaDTO, CategoryGroupDTO, CalendarDayDTO, UpcomingDTO

  Legend:
    FrequencyOptionDTO, CategoryDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers and the service, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/task.go: TaskJSON type
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/factory"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// =============================================================================
// TASKS
// =============================================================================

// TaskDTO is a stored task plus its display attributes.
type TaskDTO struct {
	factory.TaskJSON
	Label    string `json:"label"`
	Color    string `json:"color"`
	Interval int    `json:"interval"`
}

// =============================================================================
// COMPLETIONS
// =============================================================================

// ToggleRequest marks a task done (or undone) on a date. Date defaults to today.
type ToggleRequest struct {
	Date  string `json:"date,omitempty"`
	Actor string `json:"actor"`
}

// ToggleResponse reports the task's state for the toggled date.
type ToggleResponse struct {
	TaskID    string `json:"task_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// CompletionDTO is a completion log entry.
type CompletionDTO struct {
	Date string `json:"date"`
	User string `json:"user"`
}

// =============================================================================
// RESCHEDULING
// =============================================================================

// RescheduleRequest moves the occurrence in From's cycle to To.
type RescheduleRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AnchorRequest realigns a recurring task. An empty date clears the anchor.
type AnchorRequest struct {
	Date string `json:"date"`
}

// PeriodDTO describes the recurrence cycle a date belongs to.
type PeriodDTO struct {
	TaskID    string `json:"task_id"`
	Date      string `json:"date"`
	PeriodKey string `json:"period_key"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Override  string `json:"override,omitempty"`
}

// =============================================================================
// VIEWS
// =============================================================================

// CategoryGroupDTO is a run of pending tasks under one category.
type CategoryGroupDTO struct {
	Category string    `json:"category"`
	Color    string    `json:"color"`
	Tasks    []TaskDTO `json:"tasks"`
}

// AgendaDTO is the day view.
type AgendaDTO struct {
	Date     string             `json:"date"`
	Total    int                `json:"total"`
	Pending  []CategoryGroupDTO `json:"pending"`
	Done     []TaskDTO          `json:"done"`
	Progress decimal.Decimal    `json:"progress"`
	AllDone  bool               `json:"all_done"`
}

// CalendarDayDTO is one cell of the month view.
type CalendarDayDTO struct {
	Date    string `json:"date"`
	Due     int    `json:"due"`
	Done    int    `json:"done"`
	IsToday bool   `json:"is_today"`
}

// UpcomingDTO is one row of the all-tasks view.
type UpcomingDTO struct {
	Task         TaskDTO        `json:"task"`
	DaysUntilDue int            `json:"days_until_due"`
	NextDue      string         `json:"next_due"`
	CompletedNow bool           `json:"completed_now"`
	Completion   *CompletionDTO `json:"last_completion,omitempty"`
}

// =============================================================================
// LEGEND
// =============================================================================

// FrequencyOptionDTO is a preset offered when creating a task.
type FrequencyOptionDTO struct {
	Tag         string `json:"tag"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	UsesWeekday bool   `json:"uses_weekday"`
	UsesNudge   bool   `json:"uses_nudge"`
}

// CategoryDTO is a category and its display color.
type CategoryDTO struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// =============================================================================
// SCENARIOS & ERRORS
// =============================================================================

// ScenarioDTO represents a starter schedule.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request body for loading a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is returned for API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (h *Handler) toTaskDTO(t recurrence.Task) TaskDTO {
	return TaskDTO{
		TaskJSON: h.Tasks.ToJSON(t),
		Label:    chores.Label(t.Frequency),
		Color:    chores.Color(t.Frequency),
		Interval: recurrence.IntervalOf(t.Frequency),
	}
}

func (h *Handler) toTaskDTOs(tasks []recurrence.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = h.toTaskDTO(t)
	}
	return dtos
}

func (h *Handler) toAgendaDTO(a chores.DayAgenda) AgendaDTO {
	dto := AgendaDTO{
		Date:     a.Date.String(),
		Total:    a.Total,
		Pending:  make([]CategoryGroupDTO, len(a.Pending)),
		Done:     h.toTaskDTOs(a.Done),
		Progress: a.Progress,
		AllDone:  a.AllDone(),
	}
	for i, g := range a.Pending {
		dto.Pending[i] = CategoryGroupDTO{
			Category: g.Category,
			Color:    chores.CategoryColor(g.Category),
			Tasks:    h.toTaskDTOs(g.Tasks),
		}
	}
	return dto
}

func toCalendarDTOs(days []chores.CalendarDay) []CalendarDayDTO {
	dtos := make([]CalendarDayDTO, len(days))
	for i, d := range days {
		dtos[i] = CalendarDayDTO{Date: d.Date.String(), Due: d.Due, Done: d.Done, IsToday: d.IsToday}
	}
	return dtos
}

func (h *Handler) toUpcomingDTOs(rows []chores.UpcomingTask) []UpcomingDTO {
	dtos := make([]UpcomingDTO, len(rows))
	for i, row := range rows {
		dtos[i] = UpcomingDTO{
			Task:         h.toTaskDTO(row.Task),
			DaysUntilDue: row.DaysUntilDue,
			NextDue:      row.NextDue.String(),
			CompletedNow: row.CompletedNow,
		}
		if row.Completion != nil {
			dtos[i].Completion = &CompletionDTO{Date: row.Completion.Date.String(), User: row.Completion.Actor}
		}
	}
	return dtos
}

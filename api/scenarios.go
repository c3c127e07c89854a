/*
scenarios.go - Starter schedules for new households and demos

PURPOSE:

	Provides pre-built schedules that populate the database with a realistic
	set of chores. Each scenario is stored in the same id-keyed JSON shape a
	household export uses, so the loaders go through the normal import path.

AVAILABLE SCENARIOS:

	new-household:     No tasks, default users
	small-apartment:   Daily kitchen basics plus weekly and monthly cleaning
	full-house:        Every frequency kind, including nudged long intervals,
	                   a one-time task, and a rescheduled cycle

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Parse schedule via factory
 3. Replace schedule through the service (validation applies)
 4. Save default users

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "full-house"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Add the schedule JSON to 'scenarioSchedules'

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Import, ResetDatabase handlers
  - factory/task.go: Task JSON definitions
*/
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/henleyisabel12/teaco-chores/chores"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "new-household",
		Name:        "New Household",
		Description: "Empty schedule with the default two-person household",
	},
	{
		ID:          "small-apartment",
		Name:        "Small Apartment",
		Description: "Daily kitchen basics, weekly bathroom and floors, monthly deep cleans",
	},
	{
		ID:          "full-house",
		Name:        "Full House",
		Description: "Every frequency kind, nudged long intervals, a one-time task and a moved cycle",
	},
}

var scenarioSchedules = map[string]string{
	"new-household": `{}`,

	"small-apartment": `{
  "d_k1": {"id": "d_k1", "task": "Wipe crumbs from kitchen counters", "cat": "Kitchen", "freq": "daily", "tod": "evening"},
  "d_k2": {"id": "d_k2", "task": "Rinse food from kitchen sink", "cat": "Kitchen", "freq": "daily", "tod": "evening"},
  "d_b1": {"id": "d_b1", "task": "Make bed", "cat": "Bedroom", "freq": "daily", "tod": "morning"},
  "3d_m1": {"id": "3d_m1", "task": "Water plants", "cat": "Misc", "freq": "3day"},
  "w_ba1": {"id": "w_ba1", "task": "Clean toilet", "cat": "Bathroom", "freq": "weekly", "dow": 6},
  "w_f1": {"id": "w_f1", "task": "Vacuum living room", "cat": "Floors", "freq": "weekly", "dow": 0},
  "w_la1": {"id": "w_la1", "task": "Wash and fold towels", "cat": "Laundry", "freq": "weekly", "dow": 3},
  "bw_b1": {"id": "bw_b1", "task": "Wash sheets", "cat": ["Bedroom", "Laundry"], "freq": "biweekly", "dow": 5, "weekOffset": 0},
  "m_k1": {"id": "m_k1", "task": "Deep clean fridge interior & shelving", "cat": "Kitchen", "freq": "monthly", "nudgeDays": 7},
  "m_ba1": {"id": "m_ba1", "task": "Deep clean shower tile & grout", "cat": "Bathroom", "freq": "monthly", "nudgeDays": 10}
}`,

	"full-house": `{
  "d_k1": {"id": "d_k1", "task": "Wipe crumbs from stove", "cat": "Kitchen", "freq": "daily", "tod": "evening"},
  "d_l1": {"id": "d_l1", "task": "Scoop litter", "cat": "Litter", "freq": "daily", "tod": "morning"},
  "d_l2": {"id": "d_l2", "task": "Replace cat water", "cat": "Litter", "freq": "daily", "tod": "morning"},
  "3d_m1": {"id": "3d_m1", "task": "Pick up clutter", "cat": "Misc", "freq": "3day"},
  "w_ba1": {"id": "w_ba1", "task": "Wipe down bathroom counters & sink", "cat": "Bathroom", "freq": "weekly", "dow": 6},
  "w_f1": {"id": "w_f1", "task": "Sweep kitchen floors & entryway", "cat": ["Floors", "Kitchen"], "freq": "weekly", "dow": 2},
  "w_l1": {"id": "w_l1", "task": "Vacuum carpet around litter box", "cat": "Litter", "freq": "weekly", "dow": 4},
  "bw_b1": {"id": "bw_b1", "task": "Wash sheets", "cat": ["Bedroom", "Laundry"], "freq": "biweekly", "dow": 5, "weekOffset": 0},
  "bw_b2": {"id": "bw_b2", "task": "Vacuum bedroom", "cat": "Bedroom", "freq": "biweekly", "dow": 5, "weekOffset": 1},
  "tw_k1": {"id": "tw_k1", "task": "Deep clean kitchen trash can interior", "cat": "Kitchen", "freq": "triweekly", "dow": 0, "weekOffset": 2},
  "m_k1": {"id": "m_k1", "task": "Descale coffee maker", "cat": "Kitchen", "freq": "monthly", "nudgeDays": 7},
  "m_f1": {"id": "m_f1", "task": "Deep clean baseboards (scrub)", "cat": "Floors", "freq": "monthly", "nudgeDays": 14,
    "reschedules": {"2026-02-15": "2026-02-21"}},
  "2m_ba1": {"id": "2m_ba1", "task": "Deep clean showerhead", "cat": "Bathroom", "freq": "2month", "nudgeDays": 21},
  "3m_k1": {"id": "3m_k1", "task": "Run self-cleaning cycle on dishwasher", "cat": "Kitchen", "freq": "3month", "nudgeDays": 30},
  "6m_b1": {"id": "6m_b1", "task": "Wash mattress protector", "cat": "Bedroom", "freq": "6month", "nudgeDays": 42},
  "ann_k1": {"id": "ann_k1", "task": "Clean refrigerator condenser coils", "cat": "Kitchen", "freq": "annual", "nudgeDays": 7, "lastDone": "2026-02-14"},
  "ann_l1": {"id": "ann_l1", "task": "Replace litter box", "cat": "Litter", "freq": "annual", "nudgeDays": 28, "lastDone": "2025-02-01"},
  "3yr_b1": {"id": "3yr_b1", "task": "Wash comforter", "cat": "Bedroom", "freq": "3year", "nudgeDays": 120},
  "c_o1": {"id": "c_o1", "task": "Wipe down outdoor chairs & tables", "cat": "Outdoor", "freq": "custom:10", "nudgeDays": 3},
  "once_m1": {"id": "once_m1", "task": "Clean out mini fridge and move to garage", "cat": "Misc", "freq": "once", "onceDate": "2026-03-07"}
}`,
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario resets the database and loads a starter schedule.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !decodeBody(w, r, &req) {
		return
	}

	schedule, ok := scenarioSchedules[req.ScenarioID]
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	// Reset first
	if err := h.Service.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	if err := h.loadSchedule(ctx, schedule); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	log.Printf("[Scenarios] Loaded %s", req.ScenarioID)

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSchedule(ctx context.Context, schedule string) error {
	tasks, err := h.Tasks.ParseSchedule([]byte(schedule))
	if err != nil {
		return fmt.Errorf("failed to parse schedule: %w", err)
	}
	if err := h.Service.ReplaceSchedule(ctx, tasks, nil); err != nil {
		return err
	}
	_, err = h.Service.SaveUsers(ctx, chores.DefaultUsers())
	return err
}

// ScenarioSchedule returns the raw schedule JSON for a scenario id.
func ScenarioSchedule(id string) ([]byte, bool) {
	s, ok := scenarioSchedules[id]
	return []byte(s), ok
}

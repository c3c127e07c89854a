/*
scenarios_test.go - Tests for starter schedules

PURPOSE:
	Tests that each scenario loads through the normal validation path and
	sets up the expected state:
	- Tasks are created in id order
	- Default users are saved
	- Stored reschedules take effect on the agenda

These tests run against the SQLite store so they double as integration tests.
*/
package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/recurrence"
	"github.com/henleyisabel12/teaco-chores/store/sqlite"
)

func setupScenarioServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := chores.NewService(db, recurrence.New(recurrence.MustParseDate("2026-02-01")))
	svc.Clock = chores.FixedClock(recurrence.MustParseDate("2026-02-01"))
	h := NewHandler(svc)
	return h, NewRouter(h, nil)
}

func loadScenario(t *testing.T, srv http.Handler, id string) {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestScenario_AllScenariosLoadWithoutError(t *testing.T) {
	// GIVEN: All available scenarios
	// WHEN: Loading each scenario
	// THEN: None should error and each becomes current
	want := map[string]int{
		"new-household":   0,
		"small-apartment": 10,
		"full-house":      20,
	}
	require.Len(t, scenarios, len(want))

	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			_, srv := setupScenarioServer(t)
			loadScenario(t, srv, s.ID)

			tasks := decode[[]TaskDTO](t, do(t, srv, http.MethodGet, "/api/tasks", nil))
			assert.Len(t, tasks, want[s.ID])

			current := decode[*ScenarioDTO](t, do(t, srv, http.MethodGet, "/api/scenarios/current", nil))
			require.NotNil(t, current)
			assert.Equal(t, s.ID, current.ID)

			users := decode[[]chores.User](t, do(t, srv, http.MethodGet, "/api/users", nil))
			assert.Equal(t, chores.DefaultUsers(), users)
		})
	}
}

func TestScenario_FullHouse(t *testing.T) {
	_, srv := setupScenarioServer(t)
	loadScenario(t, srv, "full-house")

	// Id-keyed schedules load in key order
	tasks := decode[[]TaskDTO](t, do(t, srv, http.MethodGet, "/api/tasks", nil))
	require.NotEmpty(t, tasks)
	assert.Equal(t, "2m_ba1", tasks[0].ID)

	// The stored reschedule moves the first baseboard cycle to a Saturday
	agendaOn := func(d string) []string {
		agenda := decode[AgendaDTO](t, do(t, srv, http.MethodGet, "/api/agenda?date="+d, nil))
		var names []string
		for _, g := range agenda.Pending {
			for _, task := range g.Tasks {
				names = append(names, task.Task)
			}
		}
		return names
	}
	assert.NotContains(t, agendaOn("2026-02-15"), "Deep clean baseboards (scrub)")
	assert.Contains(t, agendaOn("2026-02-21"), "Deep clean baseboards (scrub)")
	assert.Contains(t, agendaOn("2026-03-07"), "Clean out mini fridge and move to garage")
}

func TestScenario_LoadReplacesPreviousData(t *testing.T) {
	_, srv := setupScenarioServer(t)
	createTask(t, srv, `{"task":"Leftover","freq":"daily"}`)

	loadScenario(t, srv, "small-apartment")
	loadScenario(t, srv, "new-household")

	assert.Empty(t, decode[[]TaskDTO](t, do(t, srv, http.MethodGet, "/api/tasks", nil)))
}

func TestScenario_UnknownAndReset(t *testing.T) {
	_, srv := setupScenarioServer(t)

	rec := do(t, srv, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "castle"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	loadScenario(t, srv, "small-apartment")
	rec = do(t, srv, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	current := decode[*ScenarioDTO](t, do(t, srv, http.MethodGet, "/api/scenarios/current", nil))
	assert.Nil(t, current)
	assert.Empty(t, decode[[]TaskDTO](t, do(t, srv, http.MethodGet, "/api/tasks", nil)))

	rec = do(t, srv, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ScenarioDTO](t, rec), len(scenarios))
}

func TestScenarioSchedule(t *testing.T) {
	for _, s := range scenarios {
		data, ok := ScenarioSchedule(s.ID)
		assert.True(t, ok, s.ID)
		assert.NotEmpty(t, data, s.ID)
	}
	_, ok := ScenarioSchedule("castle")
	assert.False(t, ok)
}

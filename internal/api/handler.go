package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudai/estudai/internal/api/middleware"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/schedule"
	"github.com/estudai/estudai/internal/taskstore"
)

type Handler struct {
	backend Backend
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(backend Backend, loc *time.Location, now func() time.Time) *Handler {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{backend: backend, loc: loc, now: now}
}

// session loads a task store for the authenticated user of the request.
func (h *Handler) session(c echo.Context) (*taskstore.Store, models.User, error) {
	user, ok := middleware.User(c)
	if !ok {
		return nil, user, echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}

	st := taskstore.New(h.backend, h.loc)
	st.SetClock(h.now)
	if res := st.Init(c.Request().Context(), user.ID); !res.Success {
		return nil, user, fromResult(res)
	}
	return st, user, nil
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return id, nil
}

func (h *Handler) ListTasks(c echo.Context) error {
	sel, err := filtersFromQuery(c)
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	st.SetFilters(sel)
	st.SetSearch(c.QueryParam("q"))
	tasks := st.Visible()
	return respond(c, http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	draft, err := req.draft()
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	res := st.Create(c.Request().Context(), draft)
	if !res.Success {
		return fromResult(res)
	}
	return respond(c, http.StatusCreated, echo.Map{"tasks": st.Tasks()}, res.Warnings...)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	patch, err := req.patch()
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	res := st.Update(c.Request().Context(), id, patch)
	if !res.Success {
		return fromResult(res)
	}
	task, _ := st.Task(id)
	return respond(c, http.StatusOK, task, res.Warnings...)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	if res := st.Delete(c.Request().Context(), id); !res.Success {
		return fromResult(res)
	}
	return respond(c, http.StatusOK, echo.Map{"deleted": []int64{id}})
}

// ToggleTask flips completion. Unlike the store, an unknown id is a 404.
func (h *Handler) ToggleTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}
	if _, ok := st.Task(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	if res := st.ToggleCompletion(c.Request().Context(), id); !res.Success {
		return fromResult(res)
	}
	task, _ := st.Task(id)
	return respond(c, http.StatusOK, task)
}

func (h *Handler) BatchDelete(c echo.Context) error {
	var req BatchDeleteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	var owned []int64
	seen := make(map[int64]bool, len(req.IDs))
	for _, id := range req.IDs {
		if _, ok := st.Task(id); ok && !seen[id] {
			seen[id] = true
			owned = append(owned, id)
		}
	}

	if res := st.BatchDelete(c.Request().Context(), req.IDs); !res.Success {
		return fromResult(res)
	}

	// Unknown ids and other users' ids are skipped by the store; only
	// report what actually left the collection.
	deleted := make([]int64, 0, len(owned))
	for _, id := range owned {
		if _, ok := st.Task(id); !ok {
			deleted = append(deleted, id)
		}
	}
	return respond(c, http.StatusOK, echo.Map{"requested": req.IDs, "deleted": deleted})
}

// BatchUpdate answers 200 when every id went through and 207 when some failed.
func (h *Handler) BatchUpdate(c echo.Context) error {
	var req BatchUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	patch, err := req.Patch.patch()
	if err != nil {
		return err
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	res := st.BatchUpdate(c.Request().Context(), req.IDs, patch)
	if len(res.Items) == 0 {
		return fromResult(res.Result)
	}

	items := make([]BatchItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, BatchItem{ID: it.ID, Success: it.Success, Error: it.Message()})
	}
	status := http.StatusOK
	if !res.Success {
		status = http.StatusMultiStatus
	}
	return c.JSON(status, Envelope{
		Success:  res.Success,
		Error:    res.Message(),
		Warnings: res.Warnings,
		Data:     echo.Map{"items": items},
	})
}

// AgendaDay is one cell of the month grid with the tasks due that day.
type AgendaDay struct {
	Date      string        `json:"date"`
	InMonth   bool          `json:"in_month"`
	Tasks     []models.Task `json:"tasks"`
	EstHours  float64       `json:"estimated_hours"`
	TaskTypes []string      `json:"task_types,omitempty"`
}

func (h *Handler) Agenda(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}
	st, _, err := h.session(c)
	if err != nil {
		return err
	}

	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, h.loc)
	byDay := schedule.ByDay(st.Tasks(), h.loc)

	var weeks [][]AgendaDay
	for _, row := range schedule.Weeks(schedule.MonthCells(anchor)) {
		week := make([]AgendaDay, 0, len(row))
		for _, cell := range row {
			tasks := byDay[cell.Key()]
			day := AgendaDay{
				Date:     cell.Key(),
				InMonth:  cell.InCurrentMonth,
				Tasks:    tasks,
				EstHours: schedule.TotalHours(tasks),
			}
			if day.Tasks == nil {
				day.Tasks = []models.Task{}
			}
			for _, typ := range schedule.DayTypes(tasks, 3) {
				day.TaskTypes = append(day.TaskTypes, typ.Label())
			}
			week = append(week, day)
		}
		weeks = append(weeks, week)
	}

	return respond(c, http.StatusOK, echo.Map{
		"label": schedule.MonthLabel(anchor),
		"weeks": weeks,
	})
}

func (h *Handler) ListSubjects(c echo.Context) error {
	user, ok := middleware.User(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	subjects, err := h.backend.ListSubjects(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(statusFor(err), "failed to list subjects")
	}
	return respond(c, http.StatusOK, echo.Map{"count": len(subjects), "subjects": subjects})
}

// ListSchedule returns the weekly entries; ?day=0..6 narrows to one weekday.
func (h *Handler) ListSchedule(c echo.Context) error {
	user, ok := middleware.User(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	ctx := c.Request().Context()

	var (
		entries []models.ScheduleEntry
		err     error
	)
	if d := c.QueryParam("day"); d != "" {
		day, convErr := strconv.Atoi(d)
		if convErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day")
		}
		entries, err = h.backend.ScheduleForDay(ctx, user.ID, day)
	} else {
		entries, err = h.backend.ListSchedule(ctx, user.ID)
	}
	if err != nil {
		return echo.NewHTTPError(statusFor(err), err.Error())
	}
	return respond(c, http.StatusOK, echo.Map{"count": len(entries), "entries": entries})
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estudai/estudai/internal/filter"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/taskstore"
)

// CreateTaskRequest is the body of POST /tasks. DueAt uses DD/MM/YYYY HH:MM.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Difficulty  string `json:"difficulty"`
	DueAt       string `json:"due_at"`
	SubjectID   *int64 `json:"subject_id"`
	Priority    int    `json:"priority"`
}

func (r CreateTaskRequest) draft() (taskstore.Draft, error) {
	d := taskstore.Draft{
		Title:       r.Title,
		Description: r.Description,
		DueAt:       r.DueAt,
		SubjectID:   r.SubjectID,
		Priority:    r.Priority,
	}
	if r.Type != "" {
		typ, err := models.ParseTaskType(r.Type)
		if err != nil {
			return d, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		d.Type = typ
	}
	if r.Difficulty != "" {
		diff, err := models.ParseDifficulty(r.Difficulty)
		if err != nil {
			return d, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		d.Difficulty = &diff
	}
	return d, nil
}

// UpdateTaskRequest is a partial edit. Absent fields are left alone;
// ClearDifficulty and ClearSubject unset those columns.
type UpdateTaskRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Type            *string `json:"type"`
	Difficulty      *string `json:"difficulty"`
	ClearDifficulty bool    `json:"clear_difficulty"`
	DueAt           *string `json:"due_at"`
	Completed       *bool   `json:"completed"`
	SubjectID       *int64  `json:"subject_id"`
	ClearSubject    bool    `json:"clear_subject"`
	Priority        *int    `json:"priority"`
}

func (r UpdateTaskRequest) patch() (models.TaskPatch, error) {
	var p models.TaskPatch
	if r.Title != nil {
		p.Title = models.Some(*r.Title)
	}
	if r.Description != nil {
		p.Description = models.Some(*r.Description)
	}
	if r.Type != nil {
		typ, err := models.ParseTaskType(*r.Type)
		if err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		p.Type = models.Some(typ)
	}
	switch {
	case r.ClearDifficulty:
		p.Difficulty = models.Some[*models.Difficulty](nil)
	case r.Difficulty != nil:
		diff, err := models.ParseDifficulty(*r.Difficulty)
		if err != nil {
			return p, echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		p.Difficulty = models.Some(&diff)
	}
	if r.DueAt != nil {
		p.DueAt = models.Some(*r.DueAt)
	}
	if r.Completed != nil {
		p.Completed = models.Some(*r.Completed)
	}
	switch {
	case r.ClearSubject:
		p.SubjectID = models.Some[*int64](nil)
	case r.SubjectID != nil:
		p.SubjectID = models.Some(r.SubjectID)
	}
	if r.Priority != nil {
		p.Priority = models.Some(*r.Priority)
	}
	if p.IsEmpty() {
		return p, echo.NewHTTPError(http.StatusBadRequest, "no fields to update")
	}
	return p, nil
}

// BatchDeleteRequest is the body of POST /tasks/batch-delete.
type BatchDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BatchUpdateRequest is the body of POST /tasks/batch-update.
type BatchUpdateRequest struct {
	IDs   []int64           `json:"ids"`
	Patch UpdateTaskRequest `json:"patch"`
}

// BatchItem reports one id of a batch update.
type BatchItem struct {
	ID      int64  `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// filtersFromQuery reads type, difficulty, status and period. Missing
// parameters mean "all".
func filtersFromQuery(c echo.Context) (filter.Selection, error) {
	var sel filter.Selection
	var err error
	if sel.Type, err = filter.ParseType(c.QueryParam("type")); err != nil {
		return sel, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if sel.Difficulty, err = filter.ParseDifficulty(c.QueryParam("difficulty")); err != nil {
		return sel, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if sel.Status, err = filter.ParseStatus(c.QueryParam("status")); err != nil {
		return sel, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if sel.Period, err = filter.ParsePeriod(c.QueryParam("period")); err != nil {
		return sel, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return sel, nil
}

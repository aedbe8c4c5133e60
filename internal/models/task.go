package models

import (
	"fmt"
	"strings"
)

// TaskType is the stored kind of a task.
type TaskType string

const (
	TaskTypeActivity   TaskType = "Atividade"
	TaskTypeAssignment TaskType = "Trabalho"
	TaskTypeExam       TaskType = "Prova"
	TaskTypeOther      TaskType = "Outro"
)

// TaskTypes lists the selectable task types in display order.
var TaskTypes = []TaskType{TaskTypeActivity, TaskTypeAssignment, TaskTypeExam, TaskTypeOther}

// Label returns the upper-case display string (ATIVIDADE, TRABALHO, PROVA, OUTRO).
func (t TaskType) Label() string {
	return strings.ToUpper(string(t))
}

func (t TaskType) Valid() bool {
	switch t {
	case TaskTypeActivity, TaskTypeAssignment, TaskTypeExam, TaskTypeOther:
		return true
	}
	return false
}

// ParseTaskType accepts the English name, the display label or the stored value.
func ParseTaskType(s string) (TaskType, error) {
	switch normalizeEnum(s) {
	case "activity", "atividade":
		return TaskTypeActivity, nil
	case "assignment", "trabalho":
		return TaskTypeAssignment, nil
	case "exam", "prova":
		return TaskTypeExam, nil
	case "other", "outro":
		return TaskTypeOther, nil
	}
	return "", fmt.Errorf("invalid task type: %q", s)
}

// Difficulty is the optional effort estimate of a task.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Médio"
	DifficultyHard   Difficulty = "Difícil"
)

// Difficulties lists the selectable difficulties in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Label() string {
	return string(d)
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Rank orders difficulties from easiest (1) to hardest (3). Unknown values rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// ParseDifficulty accepts English names and the Portuguese labels with or without accents.
func ParseDifficulty(s string) (Difficulty, error) {
	switch normalizeEnum(s) {
	case "easy", "facil":
		return DifficultyEasy, nil
	case "medium", "medio":
		return DifficultyMedium, nil
	case "hard", "dificil":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("invalid difficulty: %q", s)
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ê", "e", "ã", "a", "ç", "c")

func normalizeEnum(s string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Task is the client-side view of a task. DueAt holds the combined display
// value (DD/MM/YYYY HH:MM) and is empty when the task has no due date.
type Task struct {
	ID           int64       `json:"id"`
	UserID       string      `json:"user_id"`
	SubjectID    *int64      `json:"subject_id,omitempty"`
	SubjectName  string      `json:"subject_name,omitempty"`
	SubjectColor string      `json:"subject_color,omitempty"`
	Type         TaskType    `json:"type"`
	Difficulty   *Difficulty `json:"difficulty,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	DueAt        string      `json:"due_at,omitempty"`
	Completed    bool        `json:"completed"`
	Priority     int         `json:"priority"`
}

// DifficultyLabel returns the difficulty label or "-" when unset.
func (t Task) DifficultyLabel() string {
	if t.Difficulty == nil {
		return "-"
	}
	return t.Difficulty.Label()
}

// TaskRecord is a task row as the remote store holds it: the due date and
// time are separate nullable columns (YYYY-MM-DD and HH:MM:SS).
type TaskRecord struct {
	ID           int64       `json:"id"`
	UserID       string      `json:"user_id"`
	SubjectID    *int64      `json:"subject_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Type         TaskType    `json:"type"`
	Difficulty   *Difficulty `json:"difficulty"`
	DueDate      *string     `json:"due_date"`
	DueTime      *string     `json:"due_time"`
	Completed    bool        `json:"completed"`
	Priority     int         `json:"priority"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
	SubjectName  *string     `json:"subject_name,omitempty"`
	SubjectColor *string     `json:"subject_color,omitempty"`
}

// TaskPatch is a partial task edit expressed in display terms.
// Only set fields are applied. Difficulty and SubjectID may be set to nil to clear them.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Type        Optional[TaskType]
	Difficulty  Optional[*Difficulty]
	DueAt       Optional[string]
	Completed   Optional[bool]
	SubjectID   Optional[*int64]
	Priority    Optional[int]
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.Type.IsSet() && !p.Difficulty.IsSet() &&
		!p.DueAt.IsSet() && !p.Completed.IsSet() && !p.SubjectID.IsSet() && !p.Priority.IsSet()
}

// TaskRecordPatch is a partial task edit expressed in wire terms.
type TaskRecordPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Type        Optional[TaskType]
	Difficulty  Optional[*Difficulty]
	DueDate     Optional[*string]
	DueTime     Optional[*string]
	Completed   Optional[bool]
	SubjectID   Optional[*int64]
	Priority    Optional[int]
}

func (p TaskRecordPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.Type.IsSet() && !p.Difficulty.IsSet() &&
		!p.DueDate.IsSet() && !p.DueTime.IsSet() && !p.Completed.IsSet() && !p.SubjectID.IsSet() && !p.Priority.IsSet()
}

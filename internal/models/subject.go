package models

// Subject is a course used to tag tasks and schedule entries.
type Subject struct {
	ID         int64  `json:"id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Instructor string `json:"instructor,omitempty"`
	Code       string `json:"code,omitempty"`
	Color      string `json:"color"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

type SubjectPatch struct {
	Name       Optional[string]
	Instructor Optional[string]
	Code       Optional[string]
	Color      Optional[string]
}

func (p SubjectPatch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Instructor.IsSet() && !p.Code.IsSet() && !p.Color.IsSet()
}

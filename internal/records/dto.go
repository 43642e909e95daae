package records

import (
	"strings"

	"github.com/frahmantamala/coursetrack/internal"
)

// RecordUpdateDTO is one course row from the manual update form. TakenDate
// stays free text and goes through the date normalizer like imported dates.
type RecordUpdateDTO struct {
	CourseID  int64  `json:"course_id"`
	TakenDate string `json:"taken_date"`
	Status    string `json:"status"`
}

// IsEmpty reports an untouched form row; those are skipped, not upserted.
func (d RecordUpdateDTO) IsEmpty() bool {
	status := strings.ToLower(strings.TrimSpace(d.Status))
	return strings.TrimSpace(d.TakenDate) == "" && (status == "" || status == "na" || status == "n/a")
}

type UpdateRecordsRequest struct {
	Updates []RecordUpdateDTO `json:"updates"`
}

func (r UpdateRecordsRequest) Validate() error {
	if len(r.Updates) == 0 {
		return internal.NewValidationError("at least one record update is required", internal.ErrCodeValidationFailed)
	}
	for _, u := range r.Updates {
		if u.CourseID <= 0 {
			return internal.NewValidationError("course_id is required on every update", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

type UpdateRecordsResponse struct {
	EmployeeID string `json:"employee_id"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
}

package importer

import (
	courseModel "github.com/frahmantamala/coursetrack/internal/core/datamodel/course"
)

type PreviewResponse struct {
	Token      string          `json:"token"`
	CourseID   int64           `json:"course_id"`
	CourseCode string          `json:"course_code"`
	CourseName string          `json:"course_name"`
	Rows       []PreviewRow    `json:"rows"`
	Skipped    []RowDiagnostic `json:"skipped,omitempty"`
	ExpiresAt  string          `json:"expires_at"`
}

func newPreviewResponse(session *ImportSession, course *courseModel.Course) *PreviewResponse {
	return &PreviewResponse{
		Token:      session.Token,
		CourseID:   course.ID,
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
		Rows:       session.Rows,
		Skipped:    session.Skipped,
		ExpiresAt:  session.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type ConfirmResponse struct {
	Token  string        `json:"token"`
	Result ConfirmResult `json:"result"`
}

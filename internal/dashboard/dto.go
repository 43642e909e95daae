package dashboard

type DrillDownResponse struct {
	CourseID   int64          `json:"course_id"`
	CourseCode string         `json:"course_code"`
	CourseName string         `json:"course_name"`
	GapType    string         `json:"type"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	Employees  []*GapEmployee `json:"employees"`
}

package dto

import "time"

// CreateReportRequestBody defines the request body for CreateReport service.
// The report data snapshot is generated server-side over the date window.
type CreateReportRequestBody struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedBy string    `json:"created_by"`
}

// UpdateReportRequestBody defines the request body for UpdateReport service.
// The data snapshot is write-once and cannot be edited after creation.
type UpdateReportRequestBody struct {
	Title     *string `json:"title"`
	Status    *string `json:"status"`
	UpdatedBy *string `json:"updated_by"`
}

package data

import (
	"testing"
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

func validReport() *Report {
	return &Report{
		Type:      ReportTypeMonthly,
		Title:     "January circulation",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:    ReportStatusDraft,
		CreatedBy: "librarian",
		UpdatedBy: "librarian",
	}
}

func TestValidateReport(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Report)
		wantKey string
	}{
		{"valid", func(r *Report) {}, ""},
		{"unknown type", func(r *Report) { r.Type = "quarterly" }, "type"},
		{"missing title", func(r *Report) { r.Title = "" }, "title"},
		{"missing start date", func(r *Report) { r.StartDate = time.Time{} }, "start_date"},
		{"end before start", func(r *Report) { r.EndDate = r.StartDate.AddDate(0, 0, -1) }, "end_date"},
		{"end equal to start", func(r *Report) { r.EndDate = r.StartDate }, "end_date"},
		{"unknown status", func(r *Report) { r.Status = "final" }, "status"},
		{"missing creator", func(r *Report) { r.CreatedBy = "" }, "created_by"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validReport()
			tt.mutate(report)
			v := validator.New()
			ValidateReport(v, report)
			if tt.wantKey == "" {
				if !v.Valid() {
					t.Errorf("expected valid report, got errors %v", v.Errors)
				}
				return
			}
			if v.Valid() {
				t.Fatalf("expected validation error for %q, got none", tt.wantKey)
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("expected error keyed %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}
}

package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Report types.
const (
	ReportTypeDaily   = "daily"
	ReportTypeWeekly  = "weekly"
	ReportTypeMonthly = "monthly"
	ReportTypeYearly  = "yearly"
	ReportTypeCustom  = "custom"
)

// Report statuses.
const (
	ReportStatusDraft     = "draft"
	ReportStatusPublished = "published"
	ReportStatusArchived  = "archived"
)

// CategoryCount counts books per category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// MemberTypeCount counts members per member type.
type MemberTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// FineStats breaks down issued fine amounts; Total is always Paid + Pending.
type FineStats struct {
	Total   int64 `json:"total"`
	Paid    int64 `json:"paid"`
	Pending int64 `json:"pending"`
}

// ReportData is the summary snapshot captured when a report is created.
type ReportData struct {
	TotalBooks      int64             `json:"totalBooks"`
	TotalBorrows    int64             `json:"totalBorrows"`
	TotalReturns    int64             `json:"totalReturns"`
	TotalFines      int64             `json:"totalFines"`
	TotalMembers    int64             `json:"totalMembers"`
	CategoryStats   []CategoryCount   `json:"categoryStats"`
	MemberTypeStats []MemberTypeCount `json:"memberTypeStats"`
	FineStats       FineStats         `json:"fineStats"`
}

// Report is a written-once summary document over a date window.
type Report struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Data      ReportData `json:"data"`
	Status    string     `json:"status"`
	CreatedBy string     `json:"created_by"`
	UpdatedBy string     `json:"updated_by"`
	Version   int32      `json:"-"`
}

// BorrowStat is one row of the borrows-per-category distribution for a month.
type BorrowStat struct {
	Category    string `json:"category"`
	BorrowCount int64  `json:"borrowCount"`
	Ratio       string `json:"ratio"`
}

// LateReturnStat is one row of the late-returns listing for a day.
type LateReturnStat struct {
	BookTitle  string    `json:"bookTitle"`
	BorrowDate time.Time `json:"borrowDate"`
	LateDays   int       `json:"lateDays"`
}

func ValidateReport(v *validator.Validator, report *Report) {
	v.Check(report.Type != "", "type", "must be provided")
	v.Check(validator.In(report.Type, ReportTypeDaily, ReportTypeWeekly, ReportTypeMonthly, ReportTypeYearly, ReportTypeCustom), "type", "must be one of daily, weekly, monthly, yearly or custom")
	v.Check(report.Title != "", "title", "must be provided")
	v.Check(!report.StartDate.IsZero(), "start_date", "must be provided")
	v.Check(!report.EndDate.IsZero(), "end_date", "must be provided")
	v.Check(report.EndDate.After(report.StartDate), "end_date", "must be after the start date")
	v.Check(validator.In(report.Status, ReportStatusDraft, ReportStatusPublished, ReportStatusArchived), "status", "must be one of draft, published or archived")
	v.Check(report.CreatedBy != "", "created_by", "must be provided")
	v.Check(report.UpdatedBy != "", "updated_by", "must be provided")
}

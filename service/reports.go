package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type reports interface {
	CreateReport(requestBody dto.CreateReportRequestBody) (*data.Report, error)
	GetReport(reportID int64) (*data.Report, error)
	ListReports() ([]*data.Report, error)
	ListReportsByType(reportType string) ([]*data.Report, error)
	ListReportsByDateRange(start, end time.Time) ([]*data.Report, error)
	UpdateReport(reportID int64, requestBody dto.UpdateReportRequestBody) (*data.Report, error)
	DeleteReport(reportID int64) error
	GetBorrowStats(month string) ([]*data.BorrowStat, error)
	GetLateReturnStats(date string) ([]*data.LateReturnStat, error)
}

// CreateReport service creates a new report. The data snapshot is generated
// server-side over the report's date window, and the report starts as a
// draft.
func (s *service) CreateReport(requestBody dto.CreateReportRequestBody) (*data.Report, error) {
	report := &data.Report{
		Type:      requestBody.Type,
		Title:     requestBody.Title,
		StartDate: requestBody.StartDate,
		EndDate:   requestBody.EndDate,
		Status:    data.ReportStatusDraft,
		CreatedBy: requestBody.CreatedBy,
		UpdatedBy: requestBody.CreatedBy,
	}
	v := validator.New()
	if data.ValidateReport(v, report); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	reportData, err := s.repo.GenerateReportData(report.StartDate, report.EndDate)
	if err != nil {
		return nil, err
	}
	report.Data = *reportData
	err = s.repo.CreateReport(report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetReport service retrieves the details of a report.
func (s *service) GetReport(reportID int64) (*data.Report, error) {
	report, err := s.repo.GetReport(reportID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return report, nil
}

// ListReports service retrieves all reports.
func (s *service) ListReports() ([]*data.Report, error) {
	return s.repo.GetAllReports()
}

// ListReportsByType service retrieves all reports of one type.
func (s *service) ListReportsByType(reportType string) ([]*data.Report, error) {
	v := validator.New()
	v.Check(validator.In(reportType, data.ReportTypeDaily, data.ReportTypeWeekly, data.ReportTypeMonthly, data.ReportTypeYearly, data.ReportTypeCustom), "type", "must be one of daily, weekly, monthly, yearly or custom")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	return s.repo.GetReportsByType(reportType)
}

// ListReportsByDateRange service retrieves reports whose window overlaps the
// given range.
func (s *service) ListReportsByDateRange(start, end time.Time) ([]*data.Report, error) {
	v := validator.New()
	v.Check(!start.IsZero(), "start_date", "must be provided")
	v.Check(!end.IsZero(), "end_date", "must be provided")
	v.Check(end.After(start), "end_date", "must be after the start date")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	return s.repo.GetReportsByDateRange(start, end)
}

// UpdateReport service updates a report's metadata and status.
func (s *service) UpdateReport(reportID int64, requestBody dto.UpdateReportRequestBody) (*data.Report, error) {
	report, err := s.repo.GetReport(reportID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Title != nil {
		report.Title = *requestBody.Title
	}
	if requestBody.Status != nil {
		report.Status = *requestBody.Status
	}
	if requestBody.UpdatedBy != nil {
		report.UpdatedBy = *requestBody.UpdatedBy
	}
	v := validator.New()
	if data.ValidateReport(v, report); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateReport(report)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return report, nil
}

// DeleteReport service deletes a report.
func (s *service) DeleteReport(reportID int64) error {
	err := s.repo.DeleteReport(reportID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetBorrowStats service computes the per-category distribution of borrows
// for one month, given as "MM-YYYY". Each category carries its borrow count
// and its share of the total formatted as a percentage. An omitted month
// computes the all-time distribution; a month that does not parse yields an
// empty list.
func (s *service) GetBorrowStats(month string) ([]*data.BorrowStat, error) {
	var start, end time.Time
	if month != "" {
		parsed, err := time.Parse("01-2006", month)
		if err != nil {
			return []*data.BorrowStat{}, nil
		}
		start = parsed
		end = parsed.AddDate(0, 1, 0)
	}
	stats, err := s.repo.GetBorrowStats(start, end)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, stat := range stats {
		total += stat.BorrowCount
	}
	for _, stat := range stats {
		stat.Ratio = fmt.Sprintf("%.2f%%", float64(stat.BorrowCount)/float64(total)*100)
	}
	return stats, nil
}

// GetLateReturnStats service lists the borrows returned late on one UTC day,
// given as "YYYY-MM-DD". An omitted date lists every late return; a date
// that does not parse yields an empty list.
func (s *service) GetLateReturnStats(date string) ([]*data.LateReturnStat, error) {
	var start, end time.Time
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return []*data.LateReturnStat{}, nil
		}
		start = parsed
		end = parsed.AddDate(0, 0, 1)
	}
	return s.repo.GetLateReturns(start, end)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
)

type reports interface {
	CreateReport(report *data.Report) error
	GetReport(reportID int64) (*data.Report, error)
	GetAllReports() ([]*data.Report, error)
	GetReportsByType(reportType string) ([]*data.Report, error)
	GetReportsByDateRange(start, end time.Time) ([]*data.Report, error)
	UpdateReport(report *data.Report) error
	DeleteReport(reportID int64) error
	GenerateReportData(start, end time.Time) (*data.ReportData, error)
	GetBorrowStats(start, end time.Time) ([]*data.BorrowStat, error)
	GetLateReturns(start, end time.Time) ([]*data.LateReturnStat, error)
}

// CreateReport inserts a report with its data snapshot stored as jsonb.
func (r *repository) CreateReport(report *data.Report) error {
	reportData, err := json.Marshal(report.Data)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO reports (type, title, start_date, end_date, data, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version`
	args := []interface{}{
		report.Type,
		report.Title,
		report.StartDate,
		report.EndDate,
		reportData,
		report.Status,
		report.CreatedBy,
		report.UpdatedBy,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&report.ID, &report.CreatedAt, &report.Version)
}

// GetReport retrieves a report by its ID.
func (r *repository) GetReport(reportID int64) (*data.Report, error) {
	if reportID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, type, title, start_date, end_date, data, status, created_by, updated_by, version
		FROM reports
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	report, err := scanReport(r.db.QueryRowContext(ctx, query, reportID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return report, nil
}

// GetAllReports retrieves all reports, newest first.
func (r *repository) GetAllReports() ([]*data.Report, error) {
	query := `
		SELECT id, created_at, type, title, start_date, end_date, data, status, created_by, updated_by, version
		FROM reports
		ORDER BY created_at DESC, id DESC`
	return r.queryReports(query)
}

// GetReportsByType retrieves all reports of one type, newest first.
func (r *repository) GetReportsByType(reportType string) ([]*data.Report, error) {
	query := `
		SELECT id, created_at, type, title, start_date, end_date, data, status, created_by, updated_by, version
		FROM reports
		WHERE type = $1
		ORDER BY created_at DESC, id DESC`
	return r.queryReports(query, reportType)
}

// GetReportsByDateRange retrieves reports whose window overlaps the given
// range, newest first.
func (r *repository) GetReportsByDateRange(start, end time.Time) ([]*data.Report, error) {
	query := `
		SELECT id, created_at, type, title, start_date, end_date, data, status, created_by, updated_by, version
		FROM reports
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY created_at DESC, id DESC`
	return r.queryReports(query, start, end)
}

func (r *repository) queryReports(query string, args ...interface{}) ([]*data.Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reports := []*data.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}

func scanReport(row rowScanner) (*data.Report, error) {
	var report data.Report
	var reportData []byte
	err := row.Scan(
		&report.ID,
		&report.CreatedAt,
		&report.Type,
		&report.Title,
		&report.StartDate,
		&report.EndDate,
		&reportData,
		&report.Status,
		&report.CreatedBy,
		&report.UpdatedBy,
		&report.Version,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reportData, &report.Data); err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateReport updates a report's metadata and status, guarded by an
// optimistic concurrency check on the version column. The data snapshot is
// written once at creation and never rewritten.
func (r *repository) UpdateReport(report *data.Report) error {
	query := `
		UPDATE reports
		SET type = $1, title = $2, start_date = $3, end_date = $4, status = $5, updated_by = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`
	args := []interface{}{
		report.Type,
		report.Title,
		report.StartDate,
		report.EndDate,
		report.Status,
		report.UpdatedBy,
		report.ID,
		report.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&report.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteReport deletes a report by its ID.
func (r *repository) DeleteReport(reportID int64) error {
	if reportID < 1 {
		return ErrRecordNotFound
	}
	query := `DELETE FROM reports WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, reportID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// GenerateReportData aggregates the summary snapshot for a reporting window.
// Borrow, return and fine figures are scoped to the window; book, member and
// category totals describe the catalogue as it stands.
func (r *repository) GenerateReportData(start, end time.Time) (*data.ReportData, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var reportData data.ReportData
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM books),
			(SELECT COUNT(*) FROM members),
			(SELECT COUNT(*) FROM borrows WHERE borrow_date >= $1 AND borrow_date < $2),
			(SELECT COUNT(*) FROM borrows WHERE return_date >= $1 AND return_date < $2),
			(SELECT COALESCE(SUM(amount), 0) FROM fine_receipts WHERE issue_date >= $1 AND issue_date < $2),
			(SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0) FROM fine_receipts WHERE issue_date >= $1 AND issue_date < $2),
			(SELECT COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0) FROM fine_receipts WHERE issue_date >= $1 AND issue_date < $2)`,
		start, end,
	).Scan(
		&reportData.TotalBooks,
		&reportData.TotalMembers,
		&reportData.TotalBorrows,
		&reportData.TotalReturns,
		&reportData.TotalFines,
		&reportData.FineStats.Paid,
		&reportData.FineStats.Pending,
	)
	if err != nil {
		return nil, err
	}
	reportData.FineStats.Total = reportData.FineStats.Paid + reportData.FineStats.Pending

	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM books
		GROUP BY category
		ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reportData.CategoryStats = []data.CategoryCount{}
	for rows.Next() {
		var stat data.CategoryCount
		if err := rows.Scan(&stat.Category, &stat.Count); err != nil {
			return nil, err
		}
		reportData.CategoryStats = append(reportData.CategoryStats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, `
		SELECT member_type, COUNT(*)
		FROM members
		GROUP BY member_type
		ORDER BY member_type ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reportData.MemberTypeStats = []data.MemberTypeCount{}
	for rows.Next() {
		var stat data.MemberTypeCount
		if err := rows.Scan(&stat.Type, &stat.Count); err != nil {
			return nil, err
		}
		reportData.MemberTypeStats = append(reportData.MemberTypeStats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &reportData, nil
}

// GetBorrowStats counts borrows per book category. A zero start skips the
// window filter and counts over all records. Ratios are left for the caller
// to derive from the counts.
func (r *repository) GetBorrowStats(start, end time.Time) ([]*data.BorrowStat, error) {
	query := `
		SELECT k.category, COUNT(*)
		FROM borrows b
		INNER JOIN books k ON k.id = b.book_id`
	args := []interface{}{}
	if !start.IsZero() {
		query += `
		WHERE b.borrow_date >= $1 AND b.borrow_date < $2`
		args = append(args, start, end)
	}
	query += `
		GROUP BY k.category
		ORDER BY COUNT(*) DESC, k.category ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats := []*data.BorrowStat{}
	for rows.Next() {
		var stat data.BorrowStat
		if err := rows.Scan(&stat.Category, &stat.BorrowCount); err != nil {
			return nil, err
		}
		stats = append(stats, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetLateReturns lists borrows returned late, newest return first. A zero
// start skips the window filter and lists every late return. The late-day
// counts are derived from the stored dates.
func (r *repository) GetLateReturns(start, end time.Time) ([]*data.LateReturnStat, error) {
	query := `
		SELECT k.title, b.borrow_date, b.due_date, b.return_date
		FROM borrows b
		INNER JOIN books k ON k.id = b.book_id
		WHERE b.return_date > b.due_date`
	args := []interface{}{}
	if !start.IsZero() {
		query += `
		AND b.return_date >= $1 AND b.return_date < $2`
		args = append(args, start, end)
	}
	query += `
		ORDER BY b.return_date DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stats := []*data.LateReturnStat{}
	for rows.Next() {
		var stat data.LateReturnStat
		var dueDate, returnDate time.Time
		if err := rows.Scan(&stat.BookTitle, &stat.BorrowDate, &dueDate, &returnDate); err != nil {
			return nil, err
		}
		stat.LateDays = data.LateDays(returnDate, dueDate)
		stats = append(stats, &stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

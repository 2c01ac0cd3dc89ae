package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
)

type finereceipts interface {
	CreateFineReceipt(receipt *data.FineReceipt) error
	GetFineReceipt(receiptID int64) (*data.FineReceipt, error)
	GetAllFineReceipts() ([]*data.FineReceipt, error)
	GetMemberFineReceipts(memberID int64) ([]*data.FineReceipt, error)
	GetUnpaidFineReceipts() ([]*data.FineReceipt, error)
	UpdateFineReceipt(receipt *data.FineReceipt) error
	GetFineReceiptStats() (*data.FineReceiptStats, error)
}

const fineReceiptColumns = `
	f.id, f.created_at, f.member_id, f.borrow_id, f.amount, f.reason, f.issue_date,
	f.status, f.payment_date, f.payment_method, f.note, f.version,
	m.id, m.full_name, m.email, m.phone`

const fineReceiptJoins = `
	FROM fine_receipts f
	INNER JOIN members m ON m.id = f.member_id`

// CreateFineReceipt inserts a manually issued fine receipt. Receipts created
// by the return workflow go through ReturnBorrow instead, inside its
// transaction.
func (r *repository) CreateFineReceipt(receipt *data.FineReceipt) error {
	query := `
		INSERT INTO fine_receipts (member_id, borrow_id, amount, reason, issue_date, status, payment_date, payment_method, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version`
	args := []interface{}{
		receipt.MemberID,
		receipt.BorrowID,
		receipt.Amount,
		receipt.Reason,
		receipt.IssueDate,
		receipt.Status,
		receipt.PaymentDate,
		receipt.PaymentMethod,
		receipt.Note,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.db.QueryRowContext(ctx, query, args...).Scan(&receipt.ID, &receipt.CreatedAt, &receipt.Version)
}

// GetFineReceipt retrieves a fine receipt by its ID, with the member summary
// attached.
func (r *repository) GetFineReceipt(receiptID int64) (*data.FineReceipt, error) {
	if receiptID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `SELECT ` + fineReceiptColumns + fineReceiptJoins + ` WHERE f.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	receipt, err := scanFineReceipt(r.db.QueryRowContext(ctx, query, receiptID))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return receipt, nil
}

// GetAllFineReceipts retrieves all fine receipts, newest first.
func (r *repository) GetAllFineReceipts() ([]*data.FineReceipt, error) {
	query := `SELECT ` + fineReceiptColumns + fineReceiptJoins + ` ORDER BY f.created_at DESC, f.id DESC`
	return r.queryFineReceipts(query)
}

// GetMemberFineReceipts retrieves all fine receipts for a member, newest first.
func (r *repository) GetMemberFineReceipts(memberID int64) ([]*data.FineReceipt, error) {
	query := `SELECT ` + fineReceiptColumns + fineReceiptJoins + ` WHERE f.member_id = $1 ORDER BY f.created_at DESC, f.id DESC`
	return r.queryFineReceipts(query, memberID)
}

// GetUnpaidFineReceipts retrieves all receipts still pending payment, oldest
// issue date first.
func (r *repository) GetUnpaidFineReceipts() ([]*data.FineReceipt, error) {
	query := `SELECT ` + fineReceiptColumns + fineReceiptJoins + ` WHERE f.status = 'pending' ORDER BY f.issue_date ASC`
	return r.queryFineReceipts(query)
}

func (r *repository) queryFineReceipts(query string, args ...interface{}) ([]*data.FineReceipt, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	receipts := []*data.FineReceipt{}
	for rows.Next() {
		receipt, err := scanFineReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return receipts, nil
}

func scanFineReceipt(row rowScanner) (*data.FineReceipt, error) {
	var receipt data.FineReceipt
	receipt.Member = &data.MemberSummary{}
	err := row.Scan(
		&receipt.ID,
		&receipt.CreatedAt,
		&receipt.MemberID,
		&receipt.BorrowID,
		&receipt.Amount,
		&receipt.Reason,
		&receipt.IssueDate,
		&receipt.Status,
		&receipt.PaymentDate,
		&receipt.PaymentMethod,
		&receipt.Note,
		&receipt.Version,
		&receipt.Member.ID,
		&receipt.Member.FullName,
		&receipt.Member.Email,
		&receipt.Member.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// UpdateFineReceipt updates a fine receipt's payment fields, guarded by an
// optimistic concurrency check on the version column.
func (r *repository) UpdateFineReceipt(receipt *data.FineReceipt) error {
	query := `
		UPDATE fine_receipts
		SET amount = $1, reason = $2, status = $3, payment_date = $4, payment_method = $5, note = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`
	args := []interface{}{
		receipt.Amount,
		receipt.Reason,
		receipt.Status,
		receipt.PaymentDate,
		receipt.PaymentMethod,
		receipt.Note,
		receipt.ID,
		receipt.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&receipt.Version)
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

// GetFineReceiptStats sums receipt amounts per status across all receipts.
func (r *repository) GetFineReceiptStats() (*data.FineReceiptStats, error) {
	query := `
		SELECT
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'cancelled'), 0)
		FROM fine_receipts`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var stats data.FineReceiptStats
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Total, &stats.Paid, &stats.Pending, &stats.Cancelled)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

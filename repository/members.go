package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
)

type members interface {
	CreateMember(member *data.Member) error
	GetMember(memberID int64) (*data.Member, error)
	GetAllMembers() ([]*data.Member, error)
	SearchMembers(query string) ([]*data.Member, error)
	UpdateMember(member *data.Member) error
	DeleteMember(memberID int64) error
	GetMemberStats(memberID int64) (*data.MemberStats, error)
	CountActiveBorrows(memberID int64) (int64, error)
	CountPendingFines(memberID int64) (int64, error)
}

// CreateMember creates a new member record.
func (r *repository) CreateMember(member *data.Member) error {
	query := `
		INSERT INTO members (full_name, member_type, date_of_birth, address, email, phone, card_issue_date, card_expiry_date, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version`
	args := []interface{}{
		member.FullName,
		member.MemberType,
		member.DateOfBirth,
		member.Address,
		member.Email,
		member.Phone,
		member.CardIssueDate,
		member.CardExpiryDate,
		member.Status,
		member.Note,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.ID, &member.CreatedAt, &member.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetMember retrieves a member record by its ID.
func (r *repository) GetMember(memberID int64) (*data.Member, error) {
	if memberID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, full_name, member_type, date_of_birth, address, email, phone, card_issue_date, card_expiry_date, status, note, version
		FROM members
		WHERE id = $1`
	var member data.Member
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&member.ID,
		&member.CreatedAt,
		&member.FullName,
		&member.MemberType,
		&member.DateOfBirth,
		&member.Address,
		&member.Email,
		&member.Phone,
		&member.CardIssueDate,
		&member.CardExpiryDate,
		&member.Status,
		&member.Note,
		&member.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &member, nil
}

// GetAllMembers retrieves all member records, newest first.
func (r *repository) GetAllMembers() ([]*data.Member, error) {
	query := `
		SELECT id, created_at, full_name, member_type, date_of_birth, address, email, phone, card_issue_date, card_expiry_date, status, note, version
		FROM members
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// SearchMembers retrieves all members whose name, email, phone or address
// matches a search term, case-insensitively.
func (r *repository) SearchMembers(search string) ([]*data.Member, error) {
	query := `
		SELECT id, created_at, full_name, member_type, date_of_birth, address, email, phone, card_issue_date, card_expiry_date, status, note, version
		FROM members
		WHERE full_name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		   OR phone ILIKE '%' || $1 || '%'
		   OR address ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func scanMembers(rows *sql.Rows) ([]*data.Member, error) {
	members := []*data.Member{}
	for rows.Next() {
		var member data.Member
		err := rows.Scan(
			&member.ID,
			&member.CreatedAt,
			&member.FullName,
			&member.MemberType,
			&member.DateOfBirth,
			&member.Address,
			&member.Email,
			&member.Phone,
			&member.CardIssueDate,
			&member.CardExpiryDate,
			&member.Status,
			&member.Note,
			&member.Version,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMember updates a member record, guarded by an optimistic concurrency
// check on the version column.
func (r *repository) UpdateMember(member *data.Member) error {
	query := `
		UPDATE members
		SET full_name = $1, member_type = $2, date_of_birth = $3, address = $4, email = $5, phone = $6, card_expiry_date = $7, status = $8, note = $9, version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING version`
	args := []interface{}{
		member.FullName,
		member.MemberType,
		member.DateOfBirth,
		member.Address,
		member.Email,
		member.Phone,
		member.CardExpiryDate,
		member.Status,
		member.Note,
		member.ID,
		member.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&member.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "members_email_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteMember deletes a member record.
func (r *repository) DeleteMember(memberID int64) error {
	if memberID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM members
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, memberID)
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

// GetMemberStats summarizes a member's borrow counts and fine totals.
func (r *repository) GetMemberStats(memberID int64) (*data.MemberStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM borrows WHERE member_id = $1),
			(SELECT count(*) FROM borrows WHERE member_id = $1 AND return_date IS NULL AND due_date >= now()),
			(SELECT count(*) FROM borrows WHERE member_id = $1 AND return_date IS NULL AND due_date < now()),
			(SELECT COALESCE(SUM(amount), 0) FROM fine_receipts WHERE member_id = $1),
			(SELECT COALESCE(SUM(amount), 0) FROM fine_receipts WHERE member_id = $1 AND status = 'pending')`
	var stats data.MemberStats
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&stats.TotalBorrows,
		&stats.ActiveBorrows,
		&stats.OverdueBorrows,
		&stats.TotalFines,
		&stats.UnpaidFines,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountActiveBorrows returns the number of un-returned borrow records held
// by a member, overdue ones included.
func (r *repository) CountActiveBorrows(memberID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM borrows
		WHERE member_id = $1 AND return_date IS NULL`
	var count int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingFines returns the number of pending fine receipts for a member.
func (r *repository) CountPendingFines(memberID int64) (int64, error) {
	query := `
		SELECT count(*)
		FROM fine_receipts
		WHERE member_id = $1 AND status = 'pending'`
	var count int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

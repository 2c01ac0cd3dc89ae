package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/vqhuy/librarian/data"
)

type borrows interface {
	CreateBorrow(borrow *data.Borrow) error
	GetBorrow(borrowID int64) (*data.Borrow, error)
	GetAllBorrows() ([]*data.Borrow, error)
	GetMemberBorrows(memberID int64) ([]*data.Borrow, error)
	GetBookBorrows(bookID int64) ([]*data.Borrow, error)
	GetOverdueBorrows() ([]*data.Borrow, error)
	ReturnBorrow(borrow *data.Borrow, receipt *data.FineReceipt) error
	UpdateBorrowPaid(borrow *data.Borrow) error
}

// The derived status view: returned when a return date is set, overdue when
// the due date has passed, borrowed otherwise. Nothing persists the state.
const borrowStatusExpr = `
	CASE
		WHEN b.return_date IS NOT NULL THEN 'returned'
		WHEN b.due_date < now() THEN 'overdue'
		ELSE 'borrowed'
	END`

const borrowColumns = `
	b.id, b.created_at, b.member_id, b.book_id, b.borrow_date, b.due_date, b.return_date, ` + borrowStatusExpr + `,
	b.fine, b.prepaid, b.paid, b.price, b.quantity, b.note, b.version,
	m.id, m.full_name, m.email, m.phone,
	k.id, k.book_code, k.title, k.category, k.authors`

const borrowJoins = `
	FROM borrows b
	INNER JOIN members m ON m.id = b.member_id
	INNER JOIN books k ON k.id = b.book_id`

// CreateBorrow atomically decrements the book's available quantity and
// inserts the borrow record. The decrement is guarded in SQL, so two
// concurrent borrows of the last copy cannot both succeed; the loser
// receives ErrUnavailable.
func (r *repository) CreateBorrow(borrow *data.Borrow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	result, err := tx.ExecContext(ctx, `
		UPDATE books
		SET available_quantity = available_quantity - $2, version = version + 1
		WHERE id = $1 AND available_quantity >= $2`,
		borrow.BookID, borrow.Quantity)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUnavailable
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO borrows (member_id, book_id, borrow_date, due_date, fine, prepaid, paid, price, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version`,
		borrow.MemberID,
		borrow.BookID,
		borrow.BorrowDate,
		borrow.DueDate,
		borrow.Fine,
		borrow.Prepaid,
		borrow.Paid,
		borrow.Price,
		borrow.Quantity,
		borrow.Note,
	).Scan(&borrow.ID, &borrow.CreatedAt, &borrow.Version)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// GetBorrow retrieves a borrow record by its ID, with its member and book
// summaries attached.
func (r *repository) GetBorrow(borrowID int64) (*data.Borrow, error) {
	if borrowID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `SELECT ` + borrowColumns + borrowJoins + ` WHERE b.id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	row := r.db.QueryRowContext(ctx, query, borrowID)
	borrow, err := scanBorrow(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return borrow, nil
}

// GetAllBorrows retrieves all borrow records, newest first.
func (r *repository) GetAllBorrows() ([]*data.Borrow, error) {
	query := `SELECT ` + borrowColumns + borrowJoins + ` ORDER BY b.created_at DESC, b.id DESC`
	return r.queryBorrows(query)
}

// GetMemberBorrows retrieves all borrow records for a member, newest first.
func (r *repository) GetMemberBorrows(memberID int64) ([]*data.Borrow, error) {
	query := `SELECT ` + borrowColumns + borrowJoins + ` WHERE b.member_id = $1 ORDER BY b.created_at DESC, b.id DESC`
	return r.queryBorrows(query, memberID)
}

// GetBookBorrows retrieves all borrow records for a book, newest first.
func (r *repository) GetBookBorrows(bookID int64) ([]*data.Borrow, error) {
	query := `SELECT ` + borrowColumns + borrowJoins + ` WHERE b.book_id = $1 ORDER BY b.created_at DESC, b.id DESC`
	return r.queryBorrows(query, bookID)
}

// GetOverdueBorrows retrieves all un-returned borrow records past their due
// date, soonest due first.
func (r *repository) GetOverdueBorrows() ([]*data.Borrow, error) {
	query := `SELECT ` + borrowColumns + borrowJoins + `
		WHERE b.return_date IS NULL AND b.due_date < now()
		ORDER BY b.due_date ASC`
	return r.queryBorrows(query)
}

func (r *repository) queryBorrows(query string, args ...interface{}) ([]*data.Borrow, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	borrows := []*data.Borrow{}
	for rows.Next() {
		borrow, err := scanBorrow(rows)
		if err != nil {
			return nil, err
		}
		borrows = append(borrows, borrow)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return borrows, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBorrow(row rowScanner) (*data.Borrow, error) {
	var borrow data.Borrow
	borrow.Member = &data.MemberSummary{}
	borrow.Book = &data.BookSummary{}
	err := row.Scan(
		&borrow.ID,
		&borrow.CreatedAt,
		&borrow.MemberID,
		&borrow.BookID,
		&borrow.BorrowDate,
		&borrow.DueDate,
		&borrow.ReturnDate,
		&borrow.Status,
		&borrow.Fine,
		&borrow.Prepaid,
		&borrow.Paid,
		&borrow.Price,
		&borrow.Quantity,
		&borrow.Note,
		&borrow.Version,
		&borrow.Member.ID,
		&borrow.Member.FullName,
		&borrow.Member.Email,
		&borrow.Member.Phone,
		&borrow.Book.ID,
		&borrow.Book.BookCode,
		&borrow.Book.Title,
		&borrow.Book.Category,
		pq.Array(&borrow.Book.Authors),
	)
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// ReturnBorrow atomically records the return: the borrow row gains its
// return date and fine, the book's available quantity is incremented by the
// borrowed quantity, and when a fine was issued the receipt is inserted in
// the same transaction.
func (r *repository) ReturnBorrow(borrow *data.Borrow, receipt *data.FineReceipt) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	err = tx.QueryRowContext(ctx, `
		UPDATE borrows
		SET return_date = $1, fine = $2, version = version + 1
		WHERE id = $3 AND version = $4 AND return_date IS NULL
		RETURNING version`,
		borrow.ReturnDate, borrow.Fine, borrow.ID, borrow.Version,
	).Scan(&borrow.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE books
		SET available_quantity = available_quantity + $2, version = version + 1
		WHERE id = $1`,
		borrow.BookID, borrow.Quantity)
	if err != nil {
		return err
	}
	if receipt != nil {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO fine_receipts (member_id, borrow_id, amount, reason, issue_date, status, payment_date, payment_method, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, version`,
			receipt.MemberID,
			receipt.BorrowID,
			receipt.Amount,
			receipt.Reason,
			receipt.IssueDate,
			receipt.Status,
			receipt.PaymentDate,
			receipt.PaymentMethod,
			receipt.Note,
		).Scan(&receipt.ID, &receipt.CreatedAt, &receipt.Version)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UpdateBorrowPaid overwrites the paid amount on a borrow record, guarded by
// an optimistic concurrency check on the version column.
func (r *repository) UpdateBorrowPaid(borrow *data.Borrow) error {
	query := `
		UPDATE borrows
		SET paid = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, borrow.Paid, borrow.ID, borrow.Version).Scan(&borrow.Version)
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

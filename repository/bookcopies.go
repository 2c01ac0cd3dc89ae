package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
)

type bookcopies interface {
	CreateBookCopies(bookID int64, count int32) ([]*data.BookCopy, error)
	GetBookCopy(copyID int64) (*data.BookCopy, error)
	GetBookCopies(bookID int64) ([]*data.BookCopy, error)
	UpdateBookCopy(copy *data.BookCopy) error
}

// CreateBookCopies inserts count new copy records for a book, numbering them
// consecutively after the highest existing copy number. All copies are
// created available; the whole batch commits or none of it does.
func (r *repository) CreateBookCopies(bookID int64, count int32) ([]*data.BookCopy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	var nextNumber int32
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(copy_number), 0) + 1
		FROM book_copies
		WHERE book_id = $1`, bookID).Scan(&nextNumber)
	if err != nil {
		return nil, err
	}
	copies := make([]*data.BookCopy, 0, count)
	for i := int32(0); i < count; i++ {
		copy := data.BookCopy{
			BookID:     bookID,
			CopyNumber: nextNumber + i,
			Status:     data.CopyStatusAvailable,
		}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO book_copies (book_id, copy_number, status)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, version`,
			copy.BookID, copy.CopyNumber, copy.Status,
		).Scan(&copy.ID, &copy.CreatedAt, &copy.Version)
		if err != nil {
			return nil, err
		}
		copies = append(copies, &copy)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return copies, nil
}

// GetBookCopy retrieves a single copy record by its ID.
func (r *repository) GetBookCopy(copyID int64) (*data.BookCopy, error) {
	if copyID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, book_id, copy_number, barcode, status, borrow_id, version
		FROM book_copies
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var copy data.BookCopy
	err := r.db.QueryRowContext(ctx, query, copyID).Scan(
		&copy.ID,
		&copy.CreatedAt,
		&copy.BookID,
		&copy.CopyNumber,
		&copy.Barcode,
		&copy.Status,
		&copy.BorrowID,
		&copy.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &copy, nil
}

// GetBookCopies retrieves all copy records for a book in copy-number order.
func (r *repository) GetBookCopies(bookID int64) ([]*data.BookCopy, error) {
	query := `
		SELECT id, created_at, book_id, copy_number, barcode, status, borrow_id, version
		FROM book_copies
		WHERE book_id = $1
		ORDER BY copy_number ASC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	copies := []*data.BookCopy{}
	for rows.Next() {
		var copy data.BookCopy
		err := rows.Scan(
			&copy.ID,
			&copy.CreatedAt,
			&copy.BookID,
			&copy.CopyNumber,
			&copy.Barcode,
			&copy.Status,
			&copy.BorrowID,
			&copy.Version,
		)
		if err != nil {
			return nil, err
		}
		copies = append(copies, &copy)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return copies, nil
}

// UpdateBookCopy updates a copy's barcode, status and borrow link, guarded
// by an optimistic concurrency check on the version column.
func (r *repository) UpdateBookCopy(copy *data.BookCopy) error {
	query := `
		UPDATE book_copies
		SET barcode = $1, status = $2, borrow_id = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, copy.Barcode, copy.Status, copy.BorrowID, copy.ID, copy.Version).Scan(&copy.Version)
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

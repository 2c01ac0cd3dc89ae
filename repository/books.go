package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/vqhuy/librarian/data"
)

type books interface {
	CreateBook(book *data.Book) error
	GetBook(bookID int64) (*data.Book, error)
	GetAllBooks() ([]*data.Book, error)
	SearchBooks(query string) ([]*data.Book, error)
	UpdateBook(book *data.Book) error
	DeleteBook(bookID int64) error
	CountBorrowedCopies(bookID int64) (int64, error)
}

// CreateBook creates a new book record. The available quantity starts equal
// to the total quantity.
func (r *repository) CreateBook(book *data.Book) error {
	query := `
		INSERT INTO books (book_code, title, authors, category, publisher, publish_year, price, quantity, available_quantity, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, version`
	args := []interface{}{
		book.BookCode,
		book.Title,
		pq.Array(book.Authors),
		book.Category,
		book.Publisher,
		book.PublishYear,
		book.Price,
		book.Quantity,
		book.AvailableQuantity,
		book.Description,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.ID, &book.CreatedAt, &book.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "books_book_code_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetBook retrieves a book record by its ID.
func (r *repository) GetBook(bookID int64) (*data.Book, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, book_code, title, authors, category, publisher, publish_year, price, quantity, available_quantity, description, cover_path, version
		FROM books
		WHERE id = $1`
	var book data.Book
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(
		&book.ID,
		&book.CreatedAt,
		&book.BookCode,
		&book.Title,
		pq.Array(&book.Authors),
		&book.Category,
		&book.Publisher,
		&book.PublishYear,
		&book.Price,
		&book.Quantity,
		&book.AvailableQuantity,
		&book.Description,
		&book.CoverPath,
		&book.Version,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.DeriveStatus()
	return &book, nil
}

// GetAllBooks retrieves all book records, newest first.
func (r *repository) GetAllBooks() ([]*data.Book, error) {
	query := `
		SELECT id, created_at, book_code, title, authors, category, publisher, publish_year, price, quantity, available_quantity, description, cover_path, version
		FROM books
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

// SearchBooks retrieves all books whose title or code matches a search term,
// case-insensitively.
func (r *repository) SearchBooks(search string) ([]*data.Book, error) {
	query := `
		SELECT id, created_at, book_code, title, authors, category, publisher, publish_year, price, quantity, available_quantity, description, cover_path, version
		FROM books
		WHERE title ILIKE '%' || $1 || '%' OR book_code ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC, id DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBooks(rows)
}

func scanBooks(rows *sql.Rows) ([]*data.Book, error) {
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&book.ID,
			&book.CreatedAt,
			&book.BookCode,
			&book.Title,
			pq.Array(&book.Authors),
			&book.Category,
			&book.Publisher,
			&book.PublishYear,
			&book.Price,
			&book.Quantity,
			&book.AvailableQuantity,
			&book.Description,
			&book.CoverPath,
			&book.Version,
		)
		if err != nil {
			return nil, err
		}
		book.DeriveStatus()
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateBook updates a book record, guarded by an optimistic concurrency
// check on the version column.
func (r *repository) UpdateBook(book *data.Book) error {
	query := `
		UPDATE books
		SET title = $1, authors = $2, category = $3, publisher = $4, publish_year = $5, price = $6, quantity = $7, available_quantity = $8, description = $9, cover_path = $10, version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING version`
	args := []interface{}{
		book.Title,
		pq.Array(book.Authors),
		book.Category,
		book.Publisher,
		book.PublishYear,
		book.Price,
		book.Quantity,
		book.AvailableQuantity,
		book.Description,
		book.CoverPath,
		book.ID,
		book.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&book.Version)
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

// DeleteBook deletes a book record.
func (r *repository) DeleteBook(bookID int64) error {
	if bookID < 1 {
		return ErrRecordNotFound
	}
	query := `
		DELETE FROM books
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, bookID)
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

// CountBorrowedCopies returns the number of copies of a book currently out
// on loan (the sum of quantities across un-returned borrows).
func (r *repository) CountBorrowedCopies(bookID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM borrows
		WHERE book_id = $1 AND return_date IS NULL`
	var count int64
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Book copy statuses.
const (
	CopyStatusAvailable = "available"
	CopyStatusBorrowed  = "borrowed"
	CopyStatusLost      = "lost"
	CopyStatusDamaged   = "damaged"
)

// BookCopy is a physical-unit record for a book, carrying per-copy state
// such as lost or damaged. The aggregate AvailableQuantity on Book remains
// the counter the borrow workflow operates on.
type BookCopy struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	BookID     int64     `json:"book_id"`
	CopyNumber int32     `json:"copy_number"`
	Barcode    string    `json:"barcode,omitempty"`
	Status     string    `json:"status"`
	BorrowID   *int64    `json:"borrow_id,omitempty"`
	Version    int32     `json:"-"`
}

func ValidateBookCopy(v *validator.Validator, copy *BookCopy) {
	v.Check(copy.BookID > 0, "book_id", "must be provided")
	v.Check(copy.CopyNumber >= 1, "copy_number", "must be at least 1")
	v.Check(validator.In(copy.Status, CopyStatusAvailable, CopyStatusBorrowed, CopyStatusLost, CopyStatusDamaged), "status", "must be one of available, borrowed, lost or damaged")
}

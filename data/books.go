package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Book statuses are derived from availability, never stored.
const (
	BookStatusAvailable   = "available"
	BookStatusUnavailable = "unavailable"
)

const ScopeCover = "cover"

// Book defines a catalog entry. AvailableQuantity is the operative counter
// for the borrow workflow; Status is recomputed from it on every read.
type Book struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	BookCode          string    `json:"book_code"`
	Title             string    `json:"title"`
	Authors           []string  `json:"authors"`
	Category          string    `json:"category"`
	Publisher         string    `json:"publisher"`
	PublishYear       int32     `json:"publish_year"`
	Price             int64     `json:"price"`
	Quantity          int32     `json:"quantity"`
	AvailableQuantity int32     `json:"available_quantity"`
	Status            string    `json:"status"`
	Description       string    `json:"description,omitempty"`
	CoverPath         string    `json:"cover_path,omitempty"`
	Version           int32     `json:"-"`
}

// DeriveStatus recomputes the derived availability status.
func (b *Book) DeriveStatus() {
	if b.AvailableQuantity > 0 {
		b.Status = BookStatusAvailable
	} else {
		b.Status = BookStatusUnavailable
	}
}

// BookSummary is the subset of book fields embedded in borrow and fine
// receipt records.
type BookSummary struct {
	ID       int64    `json:"id"`
	BookCode string   `json:"book_code"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Authors  []string `json:"authors"`
}

func ValidateBook(v *validator.Validator, book *Book) {
	v.Check(book.BookCode != "", "book_code", "must be provided")
	v.Check(len(book.BookCode) <= 100, "book_code", "must not be more than 100 bytes long")
	v.Check(book.Title != "", "title", "must be provided")
	v.Check(len(book.Title) <= 500, "title", "must not be more than 500 bytes long")
	v.Check(book.Authors != nil, "authors", "must be provided")
	v.Check(len(book.Authors) >= 1, "authors", "must contain at least 1 author")
	v.Check(len(book.Authors) <= 100, "authors", "must not contain more than 100 authors")
	v.Check(validator.Unique(book.Authors), "authors", "must not contain duplicate values")
	v.Check(book.Category != "", "category", "must be provided")
	v.Check(book.Publisher != "", "publisher", "must be provided")
	v.Check(book.PublishYear != 0, "publish_year", "must be provided")
	v.Check(int32(time.Now().Year())-book.PublishYear <= 8, "publish_year", "must be within the last 8 years")
	v.Check(book.Price >= 0, "price", "must not be negative")
	v.Check(book.Quantity >= 0, "quantity", "must not be negative")
	v.Check(book.AvailableQuantity >= 0, "available_quantity", "must not be negative")
	v.Check(book.AvailableQuantity <= book.Quantity, "available_quantity", "must not exceed total quantity")
}

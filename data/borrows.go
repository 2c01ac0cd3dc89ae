package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Borrow statuses. Only "returned" is ground truth (a set return date);
// "borrowed" and "overdue" are derived from the due date at read time.
const (
	BorrowStatusBorrowed = "borrowed"
	BorrowStatusReturned = "returned"
	BorrowStatusOverdue  = "overdue"
)

// Borrow is one line-item record of a single book title lent to a member,
// with its own quantity, price snapshot and payment state.
type Borrow struct {
	ID         int64          `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	MemberID   int64          `json:"member_id"`
	BookID     int64          `json:"book_id"`
	BorrowDate time.Time      `json:"borrow_date"`
	DueDate    time.Time      `json:"due_date"`
	ReturnDate *time.Time     `json:"return_date,omitempty"`
	Status     string         `json:"status"`
	Fine       int64          `json:"fine"`
	Prepaid    int64          `json:"prepaid"`
	Paid       int64          `json:"paid"`
	Price      int64          `json:"price"`
	Quantity   int32          `json:"quantity"`
	Note       string         `json:"note,omitempty"`
	Member     *MemberSummary `json:"member,omitempty"`
	Book       *BookSummary   `json:"book,omitempty"`
	Version    int32          `json:"-"`
}

// DeriveStatus computes the borrow status as a view over
// (now, due date, return date). Nothing is persisted.
func (b *Borrow) DeriveStatus(now time.Time) string {
	switch {
	case b.ReturnDate != nil:
		return BorrowStatusReturned
	case now.After(b.DueDate):
		return BorrowStatusOverdue
	default:
		return BorrowStatusBorrowed
	}
}

// Outstanding returns the balance still owed on the borrow:
// price x quantity + fine - paid, clamped at zero.
func (b *Borrow) Outstanding() int64 {
	owed := b.Price*int64(b.Quantity) + b.Fine - b.Paid
	if owed < 0 {
		return 0
	}
	return owed
}

// LateDays returns the number of whole days a return is past its due date,
// rounding any fraction of a day up. Returns on or before the due date
// yield zero.
func LateDays(returnDate, dueDate time.Time) int {
	late := returnDate.Sub(dueDate)
	if late <= 0 {
		return 0
	}
	days := int(late / (24 * time.Hour))
	if late%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func ValidateBorrow(v *validator.Validator, borrow *Borrow) {
	v.Check(borrow.MemberID > 0, "member_id", "must be provided")
	v.Check(borrow.BookID > 0, "book_id", "must be provided")
	v.Check(!borrow.BorrowDate.IsZero(), "borrow_date", "must be provided")
	v.Check(!borrow.DueDate.IsZero(), "due_date", "must be provided")
	v.Check(borrow.DueDate.After(borrow.BorrowDate), "due_date", "must be after the borrow date")
	if borrow.ReturnDate != nil {
		v.Check(!borrow.ReturnDate.Before(borrow.BorrowDate), "return_date", "must not be before the borrow date")
	}
	v.Check(borrow.Quantity >= 1, "quantity", "must be at least 1")
	v.Check(borrow.Price >= 0, "price", "must not be negative")
	v.Check(borrow.Fine >= 0, "fine", "must not be negative")
	v.Check(borrow.Prepaid >= 0, "prepaid", "must not be negative")
	v.Check(borrow.Paid >= 0, "paid", "must not be negative")
}

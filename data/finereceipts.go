package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Fine receipt statuses.
const (
	FineStatusPending   = "pending"
	FineStatusPaid      = "paid"
	FineStatusCancelled = "cancelled"
)

// Payment methods accepted for a paid fine receipt.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// FineReceipt records a fine issued to a member, either manually or by the
// late-return workflow (in which case BorrowID references the late borrow).
type FineReceipt struct {
	ID            int64          `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	MemberID      int64          `json:"member_id"`
	BorrowID      *int64         `json:"borrow_id,omitempty"`
	Amount        int64          `json:"amount"`
	Reason        string         `json:"reason"`
	IssueDate     time.Time      `json:"issue_date"`
	Status        string         `json:"status"`
	PaymentDate   *time.Time     `json:"payment_date,omitempty"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	Note          string         `json:"note,omitempty"`
	Member        *MemberSummary `json:"member,omitempty"`
	Version       int32          `json:"-"`
}

// FineReceiptStats aggregates receipt amounts per status.
type FineReceiptStats struct {
	Total     int64 `json:"total"`
	Paid      int64 `json:"paid"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
}

func ValidateFineReceipt(v *validator.Validator, receipt *FineReceipt) {
	v.Check(receipt.MemberID > 0, "member_id", "must be provided")
	v.Check(receipt.Amount > 0, "amount", "must be greater than zero")
	v.Check(receipt.Reason != "", "reason", "must be provided")
	v.Check(!receipt.IssueDate.IsZero(), "issue_date", "must be provided")
	v.Check(validator.In(receipt.Status, FineStatusPending, FineStatusPaid, FineStatusCancelled), "status", "must be one of pending, paid or cancelled")
	if receipt.Status == FineStatusPaid {
		v.Check(receipt.PaymentMethod != "", "payment_method", "must be provided for a paid receipt")
	}
	if receipt.PaymentMethod != "" {
		v.Check(validator.In(receipt.PaymentMethod, PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer), "payment_method", "must be one of cash, card or transfer")
	}
	if receipt.PaymentDate != nil {
		v.Check(!receipt.PaymentDate.Before(receipt.IssueDate), "payment_date", "must not be before the issue date")
	}
}

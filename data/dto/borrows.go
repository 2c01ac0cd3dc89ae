package dto

import "time"

// BorrowLine is one requested book title and quantity within a borrow.
// Quantity defaults to 1 when omitted.
type BorrowLine struct {
	BookID   int64 `json:"book_id"`
	Quantity int32 `json:"quantity"`
}

// CreateBorrowRequestBody defines the request body for CreateBorrow service.
// One borrow record is created per line, in input order.
type CreateBorrowRequestBody struct {
	MemberID   int64        `json:"member_id"`
	Books      []BorrowLine `json:"books"`
	BorrowDate *time.Time   `json:"borrow_date"`
	DueDate    time.Time    `json:"due_date"`
	Note       string       `json:"note"`
	Prepaid    int64        `json:"prepaid"`
}

// UpdateBorrowPaidRequestBody defines the request body for UpdateBorrowPaid
// service.
type UpdateBorrowPaidRequestBody struct {
	Paid int64 `json:"paid"`
}

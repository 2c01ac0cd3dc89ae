package dto

// CreateFineReceiptRequestBody defines the request body for
// CreateFineReceipt service.
type CreateFineReceiptRequestBody struct {
	MemberID int64  `json:"member_id"`
	BorrowID *int64 `json:"borrow_id"`
	Amount   int64  `json:"amount"`
	Reason   string `json:"reason"`
	Note     string `json:"note"`
}

// UpdateFineReceiptRequestBody defines the request body for
// UpdateFineReceipt service.
type UpdateFineReceiptRequestBody struct {
	Amount        *int64  `json:"amount"`
	Reason        *string `json:"reason"`
	Status        *string `json:"status"`
	PaymentMethod *string `json:"payment_method"`
	Note          *string `json:"note"`
}

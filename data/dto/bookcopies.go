package dto

// CreateBookCopiesRequestBody defines the request body for CreateBookCopies
// service. Count copies are appended after the highest existing copy number.
type CreateBookCopiesRequestBody struct {
	Count int32 `json:"count"`
}

// UpdateBookCopyRequestBody defines the request body for UpdateBookCopy
// service.
type UpdateBookCopyRequestBody struct {
	Status  *string `json:"status"`
	Barcode *string `json:"barcode"`
}

package dto

// CreateBookRequestBody defines the request body for CreateBook service.
type CreateBookRequestBody struct {
	BookCode    string   `json:"book_code"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Category    string   `json:"category"`
	Publisher   string   `json:"publisher"`
	PublishYear int32    `json:"publish_year"`
	Price       int64    `json:"price"`
	Quantity    int32    `json:"quantity"`
	Description string   `json:"description"`
}

// UpdateBookRequestBody defines the request body for UpdateBook service. The
// fields are set to a pointer type to allow partial updates based on whether
// the value is set to nil.
type UpdateBookRequestBody struct {
	Title       *string  `json:"title"`
	Authors     []string `json:"authors"`
	Category    *string  `json:"category"`
	Publisher   *string  `json:"publisher"`
	PublishYear *int32   `json:"publish_year"`
	Price       *int64   `json:"price"`
	Quantity    *int32   `json:"quantity"`
	Description *string  `json:"description"`
}

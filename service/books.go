package service

import (
	"errors"
	"net/http"

	"github.com/vqhuy/librarian/clients"
	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type books interface {
	CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error)
	GetBook(bookID int64) (*data.Book, error)
	ListBooks() ([]*data.Book, error)
	SearchBooks(query string) ([]*data.Book, error)
	UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error)
	UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error)
	DeleteBook(bookID int64) error
}

// CreateBook service creates a new book. The available quantity starts equal
// to the total quantity.
func (s *service) CreateBook(requestBody dto.CreateBookRequestBody) (*data.Book, error) {
	book := &data.Book{
		BookCode:          requestBody.BookCode,
		Title:             requestBody.Title,
		Authors:           requestBody.Authors,
		Category:          requestBody.Category,
		Publisher:         requestBody.Publisher,
		PublishYear:       requestBody.PublishYear,
		Price:             requestBody.Price,
		Quantity:          requestBody.Quantity,
		AvailableQuantity: requestBody.Quantity,
		Description:       requestBody.Description,
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	book.DeriveStatus()
	return book, nil
}

// GetBook service retrieves the details of a book.
func (s *service) GetBook(bookID int64) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return book, nil
}

// ListBooks service retrieves all books.
func (s *service) ListBooks() ([]*data.Book, error) {
	return s.repo.GetAllBooks()
}

// SearchBooks service retrieves the books whose title or book code matches
// the search term.
func (s *service) SearchBooks(query string) ([]*data.Book, error) {
	return s.repo.SearchBooks(query)
}

// UpdateBook service updates the details of a specific book. When the total
// quantity changes, the available quantity is recomputed as the new total
// minus the copies currently out on loan.
func (s *service) UpdateBook(bookID int64, requestBody dto.UpdateBookRequestBody) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Title != nil {
		book.Title = *requestBody.Title
	}
	if requestBody.Authors != nil {
		book.Authors = requestBody.Authors
	}
	if requestBody.Category != nil {
		book.Category = *requestBody.Category
	}
	if requestBody.Publisher != nil {
		book.Publisher = *requestBody.Publisher
	}
	if requestBody.PublishYear != nil {
		book.PublishYear = *requestBody.PublishYear
	}
	if requestBody.Price != nil {
		book.Price = *requestBody.Price
	}
	if requestBody.Quantity != nil {
		borrowed, err := s.repo.CountBorrowedCopies(bookID)
		if err != nil {
			return nil, err
		}
		book.Quantity = *requestBody.Quantity
		book.AvailableQuantity = *requestBody.Quantity - int32(borrowed)
	}
	if requestBody.Description != nil {
		book.Description = *requestBody.Description
	}
	v := validator.New()
	if data.ValidateBook(v, book); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	book.DeriveStatus()
	return book, nil
}

// UpdateBookCover service uploads a new cover image for a book to s3 object
// storage and persists the object URL.
func (s *service) UpdateBookCover(bookID int64, r *http.Request) (*data.Book, error) {
	book, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	// Parse form data
	err = r.ParseMultipartForm(5000)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, ErrContentTooLarge
		default:
			return nil, ErrBadRequest
		}
	}
	file, fileHeader, err := r.FormFile("cover")
	if err != nil {
		return nil, ErrBadRequest
	}
	defer file.Close()
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	supportedMediaType := []string{
		"image/jpeg",
		"image/png",
	}
	if validMime := validator.Mime(mtype, supportedMediaType...); !validMime {
		return nil, ErrUnsupportedMediaType
	}
	s3Client, err := clients.NewS3Client(s.config)
	if err != nil {
		return nil, err
	}
	coverPath, err := s.uploadFileToS3(s3Client, buffer, mtype, fileHeader, data.ScopeCover)
	if err != nil {
		return nil, err
	}
	book.CoverPath = coverPath
	err = s.repo.UpdateBook(book)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	book.DeriveStatus()
	return book, nil
}

// DeleteBook service deletes a book. Deletion is refused while any copies
// are out on loan.
func (s *service) DeleteBook(bookID int64) error {
	borrowed, err := s.repo.CountBorrowedCopies(bookID)
	if err != nil {
		return err
	}
	if borrowed > 0 {
		return ErrBookBorrowed
	}
	err = s.repo.DeleteBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

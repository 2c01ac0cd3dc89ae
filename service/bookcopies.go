package service

import (
	"errors"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type bookcopies interface {
	CreateBookCopies(bookID int64, requestBody dto.CreateBookCopiesRequestBody) ([]*data.BookCopy, error)
	ListBookCopies(bookID int64) ([]*data.BookCopy, error)
	UpdateBookCopy(copyID int64, requestBody dto.UpdateBookCopyRequestBody) (*data.BookCopy, error)
}

// CreateBookCopies service appends count new copy records to a book,
// numbered after the highest existing copy number.
func (s *service) CreateBookCopies(bookID int64, requestBody dto.CreateBookCopiesRequestBody) ([]*data.BookCopy, error) {
	_, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	v := validator.New()
	v.Check(requestBody.Count >= 1, "count", "must be at least 1")
	v.Check(requestBody.Count <= 1000, "count", "must not be more than 1000")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	return s.repo.CreateBookCopies(bookID, requestBody.Count)
}

// ListBookCopies service retrieves all copy records for a book.
func (s *service) ListBookCopies(bookID int64) ([]*data.BookCopy, error) {
	_, err := s.repo.GetBook(bookID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.repo.GetBookCopies(bookID)
}

// UpdateBookCopy service updates a copy's barcode and status. Copy-status
// changes track the physical unit only; the book's aggregate available
// quantity is driven by the borrow workflow, not by this ledger.
func (s *service) UpdateBookCopy(copyID int64, requestBody dto.UpdateBookCopyRequestBody) (*data.BookCopy, error) {
	copy, err := s.repo.GetBookCopy(copyID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Status != nil {
		copy.Status = *requestBody.Status
	}
	if requestBody.Barcode != nil {
		copy.Barcode = *requestBody.Barcode
	}
	v := validator.New()
	if data.ValidateBookCopy(v, copy); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateBookCopy(copy)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return copy, nil
}

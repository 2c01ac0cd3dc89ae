package service

import (
	"errors"
	"testing"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
)

func TestCreateBookCopies(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	book := seedBook(repo, "BK-001", 45000, 5)

	copies, err := s.CreateBookCopies(book.ID, dto.CreateBookCopiesRequestBody{Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(copies) != 3 {
		t.Fatalf("expected 3 copies, got %d", len(copies))
	}
	for i, copy := range copies {
		if copy.CopyNumber != int32(i+1) {
			t.Errorf("copy %d: expected copy number %d, got %d", i, i+1, copy.CopyNumber)
		}
		if copy.Status != data.CopyStatusAvailable {
			t.Errorf("copy %d: expected status %q, got %q", i, data.CopyStatusAvailable, copy.Status)
		}
	}

	// A second batch continues numbering after the existing copies.
	more, err := s.CreateBookCopies(book.ID, dto.CreateBookCopiesRequestBody{Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if more[0].CopyNumber != 4 || more[1].CopyNumber != 5 {
		t.Errorf("expected copy numbers 4 and 5, got %d and %d", more[0].CopyNumber, more[1].CopyNumber)
	}
}

func TestCreateBookCopiesCountBounds(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	book := seedBook(repo, "BK-001", 45000, 5)

	if _, err := s.CreateBookCopies(book.ID, dto.CreateBookCopiesRequestBody{Count: 0}); !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation for count 0, got %v", err)
	}
	if _, err := s.CreateBookCopies(book.ID, dto.CreateBookCopiesRequestBody{Count: 1001}); !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation for count 1001, got %v", err)
	}
	if _, err := s.CreateBookCopies(99, dto.CreateBookCopiesRequestBody{Count: 1}); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for an unknown book, got %v", err)
	}
}

func TestUpdateBookCopy(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	book := seedBook(repo, "BK-001", 45000, 5)
	copies, err := s.CreateBookCopies(book.ID, dto.CreateBookCopiesRequestBody{Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := data.CopyStatusLost
	barcode := "C-0001"
	updated, err := s.UpdateBookCopy(copies[0].ID, dto.UpdateBookCopyRequestBody{
		Status:  &status,
		Barcode: &barcode,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != data.CopyStatusLost {
		t.Errorf("expected status %q, got %q", data.CopyStatusLost, updated.Status)
	}
	if updated.Barcode != barcode {
		t.Errorf("expected barcode %q, got %q", barcode, updated.Barcode)
	}

	bad := "broken"
	if _, err := s.UpdateBookCopy(copies[0].ID, dto.UpdateBookCopyRequestBody{Status: &bad}); !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation for an unknown status, got %v", err)
	}
}

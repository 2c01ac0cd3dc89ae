package service

import (
	"errors"
	"testing"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
)

func TestCreateBook(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)

	book, err := s.CreateBook(dto.CreateBookRequestBody{
		BookCode:    "BK-100",
		Title:       "Learning SQL",
		Authors:     []string{"Alan Beaulieu"},
		Category:    "databases",
		Publisher:   "O'Reilly",
		PublishYear: int32(time.Now().Year()),
		Price:       52000,
		Quantity:    4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.AvailableQuantity != 4 {
		t.Errorf("expected available quantity to start at the full quantity, got %d", book.AvailableQuantity)
	}
	if book.Status != data.BookStatusAvailable {
		t.Errorf("expected status %q, got %q", data.BookStatusAvailable, book.Status)
	}
}

func TestCreateBookDuplicateCode(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	existing := seedBook(repo, "BK-001", 45000, 5)

	_, err := s.CreateBook(dto.CreateBookRequestBody{
		BookCode:    existing.BookCode,
		Title:       "Another Title",
		Authors:     []string{"Somebody"},
		Category:    "fiction",
		Publisher:   "Penguin",
		PublishYear: int32(time.Now().Year()),
		Price:       10000,
		Quantity:    1,
	})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestUpdateBookQuantityRecomputesAvailability(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	seedBorrow(repo, member, book, 2, time.Now().AddDate(0, 0, 7), 90000)

	quantity := int32(10)
	updated, err := s.UpdateBook(book.ID, dto.UpdateBookRequestBody{Quantity: &quantity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("expected quantity 10, got %d", updated.Quantity)
	}
	// 2 copies are still out, so 10 total leaves 8 on the shelf.
	if updated.AvailableQuantity != 8 {
		t.Errorf("expected available quantity 8, got %d", updated.AvailableQuantity)
	}
}

func TestUpdateBookQuantityBelowBorrowed(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	seedBorrow(repo, member, book, 3, time.Now().AddDate(0, 0, 7), 135000)

	quantity := int32(2)
	_, err := s.UpdateBook(book.ID, dto.UpdateBookRequestBody{Quantity: &quantity})
	if !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation when quantity drops below borrowed copies, got %v", err)
	}
}

func TestDeleteBookWhileBorrowed(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	seedBorrow(repo, member, book, 1, time.Now().AddDate(0, 0, 7), 45000)

	if err := s.DeleteBook(book.ID); !errors.Is(err, ErrBookBorrowed) {
		t.Fatalf("expected ErrBookBorrowed, got %v", err)
	}
	if _, ok := repo.books[book.ID]; !ok {
		t.Error("expected the book to survive the refused delete")
	}
}

func TestDeleteBook(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	book := seedBook(repo, "BK-001", 45000, 5)

	if err := s.DeleteBook(book.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.DeleteBook(book.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on the second delete, got %v", err)
	}
}

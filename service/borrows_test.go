package service

import (
	"errors"
	"testing"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
)

func TestCreateBorrowAdjustsAvailability(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)

	borrows, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: member.ID,
		Books:    []dto.BorrowLine{{BookID: book.ID, Quantity: 2}},
		DueDate:  time.Now().AddDate(0, 0, 14),
		Prepaid:  90000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(borrows) != 1 {
		t.Fatalf("expected 1 borrow record, got %d", len(borrows))
	}
	if repo.books[book.ID].AvailableQuantity != 3 {
		t.Errorf("expected available quantity 3 after borrowing, got %d", repo.books[book.ID].AvailableQuantity)
	}
	if borrows[0].Status != data.BorrowStatusBorrowed {
		t.Errorf("expected status %q, got %q", data.BorrowStatusBorrowed, borrows[0].Status)
	}
	if borrows[0].Member == nil || borrows[0].Member.FullName != member.FullName {
		t.Errorf("expected member summary for %q on the borrow record", member.FullName)
	}

	returned, err := s.ReturnBorrow(borrows[0].ID)
	if err != nil {
		t.Fatalf("unexpected error returning: %v", err)
	}
	if repo.books[book.ID].AvailableQuantity != 5 {
		t.Errorf("expected available quantity restored to 5, got %d", repo.books[book.ID].AvailableQuantity)
	}
	if returned.Status != data.BorrowStatusReturned {
		t.Errorf("expected status %q, got %q", data.BorrowStatusReturned, returned.Status)
	}
	if returned.Fine != 0 {
		t.Errorf("expected no fine on an on-time return, got %d", returned.Fine)
	}
	if len(repo.receipts) != 0 {
		t.Errorf("expected no fine receipt on an on-time return, got %d", len(repo.receipts))
	}
}

func TestCreateBorrowDefaultQuantity(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)

	borrows, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: member.ID,
		Books:    []dto.BorrowLine{{BookID: book.ID}},
		DueDate:  time.Now().AddDate(0, 0, 14),
		Prepaid:  90000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if borrows[0].Quantity != 1 {
		t.Errorf("expected an omitted quantity to default to 1, got %d", borrows[0].Quantity)
	}
	if borrows[0].Paid != 45000 {
		t.Errorf("expected allocation for a single copy, got %d", borrows[0].Paid)
	}
	if repo.books[book.ID].AvailableQuantity != 4 {
		t.Errorf("expected available quantity 4, got %d", repo.books[book.ID].AvailableQuantity)
	}
}

func TestCreateBorrowInactiveMember(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusInactive)
	book := seedBook(repo, "BK-001", 45000, 5)

	_, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: member.ID,
		Books:    []dto.BorrowLine{{BookID: book.ID, Quantity: 1}},
		DueDate:  time.Now().AddDate(0, 0, 14),
	})
	if !errors.Is(err, ErrMemberInactive) {
		t.Fatalf("expected ErrMemberInactive, got %v", err)
	}
	if repo.books[book.ID].AvailableQuantity != 5 {
		t.Errorf("expected available quantity unchanged, got %d", repo.books[book.ID].AvailableQuantity)
	}
}

func TestCreateBorrowInsufficientCopies(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	first := seedBook(repo, "BK-001", 45000, 5)
	second := seedBook(repo, "BK-002", 30000, 1)

	_, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: member.ID,
		Books: []dto.BorrowLine{
			{BookID: first.ID, Quantity: 2},
			{BookID: second.ID, Quantity: 3},
		},
		DueDate: time.Now().AddDate(0, 0, 14),
	})
	if !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
	// The first line commits on its own before the second line fails.
	if repo.books[first.ID].AvailableQuantity != 3 {
		t.Errorf("expected first book decremented to 3, got %d", repo.books[first.ID].AvailableQuantity)
	}
	if repo.books[second.ID].AvailableQuantity != 1 {
		t.Errorf("expected second book untouched at 1, got %d", repo.books[second.ID].AvailableQuantity)
	}
	if len(repo.borrows) != 1 {
		t.Errorf("expected the first borrow record to persist, got %d records", len(repo.borrows))
	}
}

func TestCreateBorrowPrepaidAllocation(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	first := seedBook(repo, "BK-001", 5000, 5)
	second := seedBook(repo, "BK-002", 3000, 5)
	third := seedBook(repo, "BK-003", 2000, 5)

	borrows, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: member.ID,
		Books: []dto.BorrowLine{
			{BookID: first.ID, Quantity: 1},
			{BookID: second.ID, Quantity: 2},
			{BookID: third.ID, Quantity: 1},
		},
		DueDate: time.Now().AddDate(0, 0, 14),
		Prepaid: 8000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(borrows) != 3 {
		t.Fatalf("expected 3 borrow records, got %d", len(borrows))
	}
	// 8000 pool: line 1 takes its full 5000, line 2 takes the remaining
	// 3000 of its 6000 total, line 3 gets nothing.
	wantPaid := []int64{5000, 3000, 0}
	for i, borrow := range borrows {
		if borrow.Paid != wantPaid[i] {
			t.Errorf("line %d: expected paid %d, got %d", i, wantPaid[i], borrow.Paid)
		}
		if borrow.Prepaid != wantPaid[i] {
			t.Errorf("line %d: expected prepaid %d, got %d", i, wantPaid[i], borrow.Prepaid)
		}
	}
}

func TestCreateBorrowValidation(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)

	_, err := s.CreateBorrow(dto.CreateBorrowRequestBody{
		MemberID: 0,
		Books:    []dto.BorrowLine{},
		Prepaid:  -1,
	})
	if !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation, got %v", err)
	}
}

func TestReturnBorrowLateFine(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	// Due 50 hours ago: rounded up to 3 started days late.
	borrow := seedBorrow(repo, member, book, 1, time.Now().Add(-50*time.Hour), 45000)

	returned, err := s.ReturnBorrow(borrow.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if returned.Fine != 3000 {
		t.Errorf("expected fine 3000 for 3 days late at rate 1000, got %d", returned.Fine)
	}
	if len(repo.receipts) != 1 {
		t.Fatalf("expected exactly 1 fine receipt, got %d", len(repo.receipts))
	}
	for _, receipt := range repo.receipts {
		if receipt.Amount != 3000 {
			t.Errorf("expected receipt amount 3000, got %d", receipt.Amount)
		}
		if receipt.Reason != "Late return: 3 days" {
			t.Errorf("unexpected receipt reason %q", receipt.Reason)
		}
		if receipt.Status != data.FineStatusPending {
			t.Errorf("expected receipt status %q, got %q", data.FineStatusPending, receipt.Status)
		}
		if receipt.BorrowID == nil || *receipt.BorrowID != borrow.ID {
			t.Errorf("expected receipt linked to borrow %d", borrow.ID)
		}
		// The receipt must read back cleanly while still unpaid.
		fetched, err := s.GetFineReceipt(receipt.ID)
		if err != nil {
			t.Fatalf("unexpected error reading the receipt back: %v", err)
		}
		if fetched.PaymentMethod != "" || fetched.PaymentDate != nil {
			t.Errorf("expected no payment details on a pending receipt, got %q / %v", fetched.PaymentMethod, fetched.PaymentDate)
		}
	}
}

func TestReturnBorrowAlreadyReturned(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	borrow := seedBorrow(repo, member, book, 1, time.Now().AddDate(0, 0, 7), 45000)

	if _, err := s.ReturnBorrow(borrow.ID); err != nil {
		t.Fatalf("unexpected error on first return: %v", err)
	}
	if _, err := s.ReturnBorrow(borrow.ID); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned on second return, got %v", err)
	}
	if repo.books[book.ID].AvailableQuantity != 5 {
		t.Errorf("expected availability restored only once, got %d", repo.books[book.ID].AvailableQuantity)
	}
}

func TestReturnBorrowOutstandingDebt(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	borrow := seedBorrow(repo, member, book, 2, time.Now().AddDate(0, 0, 7), 60000)

	_, err := s.ReturnBorrow(borrow.ID)
	if !errors.Is(err, ErrOutstandingDebt) {
		t.Fatalf("expected ErrOutstandingDebt, got %v", err)
	}
	if repo.borrows[borrow.ID].ReturnDate != nil {
		t.Error("expected the borrow to remain open")
	}
}

func TestUpdateBorrowPaid(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	borrow := seedBorrow(repo, member, book, 2, time.Now().AddDate(0, 0, 7), 60000)

	updated, err := s.UpdateBorrowPaid(borrow.ID, dto.UpdateBorrowPaidRequestBody{Paid: 90000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Paid != 90000 {
		t.Errorf("expected paid overwritten to 90000, got %d", updated.Paid)
	}
	if repo.borrows[borrow.ID].Paid != 90000 {
		t.Errorf("expected paid persisted as 90000, got %d", repo.borrows[borrow.ID].Paid)
	}

	if _, err := s.UpdateBorrowPaid(borrow.ID, dto.UpdateBorrowPaidRequestBody{Paid: -1}); !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation for a negative amount, got %v", err)
	}
}

func TestGetBorrowNotFound(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)

	if _, err := s.GetBorrow(99); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

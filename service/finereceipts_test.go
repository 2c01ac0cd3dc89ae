package service

import (
	"errors"
	"testing"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
)

func TestCreateFineReceipt(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)

	receipt, err := s.CreateFineReceipt(dto.CreateFineReceiptRequestBody{
		MemberID: member.ID,
		Amount:   5000,
		Reason:   "Damaged cover",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != data.FineStatusPending {
		t.Errorf("expected a new receipt to be %q, got %q", data.FineStatusPending, receipt.Status)
	}
	if receipt.IssueDate.IsZero() {
		t.Error("expected the issue date to be stamped")
	}
	if receipt.Member == nil || receipt.Member.ID != member.ID {
		t.Error("expected a member summary on the receipt")
	}
}

func TestCreateFineReceiptUnknownMember(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)

	_, err := s.CreateFineReceipt(dto.CreateFineReceiptRequestBody{
		MemberID: 99,
		Amount:   5000,
		Reason:   "Damaged cover",
	})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestUpdateFineReceiptMarkPaid(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	created, err := s.CreateFineReceipt(dto.CreateFineReceiptRequestBody{
		MemberID: member.ID,
		Amount:   5000,
		Reason:   "Damaged cover",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := data.FineStatusPaid
	method := "cash"
	updated, err := s.UpdateFineReceipt(created.ID, dto.UpdateFineReceiptRequestBody{
		Status:        &status,
		PaymentMethod: &method,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != data.FineStatusPaid {
		t.Errorf("expected status %q, got %q", data.FineStatusPaid, updated.Status)
	}
	if updated.PaymentDate == nil {
		t.Error("expected the payment date to be stamped on the transition to paid")
	}
}

func TestUpdateFineReceiptPaidWithoutMethod(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	created, err := s.CreateFineReceipt(dto.CreateFineReceiptRequestBody{
		MemberID: member.ID,
		Amount:   5000,
		Reason:   "Damaged cover",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	status := data.FineStatusPaid
	_, err = s.UpdateFineReceipt(created.ID, dto.UpdateFineReceiptRequestBody{Status: &status})
	if !errors.Is(err, ErrFailedValidation) {
		t.Fatalf("expected ErrFailedValidation without a payment method, got %v", err)
	}
}

func TestListUnpaidFineReceipts(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	for _, status := range []string{data.FineStatusPending, data.FineStatusPaid, data.FineStatusPending} {
		repo.nextID++
		repo.receipts[repo.nextID] = &data.FineReceipt{
			ID:       repo.nextID,
			MemberID: member.ID,
			Amount:   1000,
			Status:   status,
			Version:  1,
		}
	}

	receipts, err := s.ListUnpaidFineReceipts()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(receipts) != 2 {
		t.Errorf("expected 2 unpaid receipts, got %d", len(receipts))
	}
}

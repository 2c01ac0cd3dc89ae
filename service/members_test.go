package service

import (
	"errors"
	"testing"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
)

func TestCreateMemberDefaults(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)

	member, err := s.CreateMember(dto.CreateMemberRequestBody{
		FullName:       "Tran Thi Binh",
		MemberType:     data.MemberTypeTeacher,
		DateOfBirth:    time.Date(1985, 3, 12, 0, 0, 0, 0, time.UTC),
		Address:        "36 Ly Thuong Kiet, Hanoi",
		Email:          "binh.tran@example.com",
		Phone:          "0987654321",
		CardExpiryDate: time.Now().AddDate(2, 0, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.Status != data.MemberStatusActive {
		t.Errorf("expected new member to be %q, got %q", data.MemberStatusActive, member.Status)
	}
	if member.CardIssueDate.IsZero() {
		t.Error("expected card issue date to default to now")
	}
	if member.ID == 0 {
		t.Error("expected an assigned ID")
	}
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	existing := seedMember(repo, data.MemberStatusActive)

	_, err := s.CreateMember(dto.CreateMemberRequestBody{
		FullName:       "Someone Else",
		MemberType:     data.MemberTypeStaff,
		DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Address:        "somewhere",
		Email:          existing.Email,
		Phone:          "0911111111",
		CardExpiryDate: time.Now().AddDate(2, 0, 0),
	})
	if !errors.Is(err, ErrDuplicateRecord) {
		t.Fatalf("expected ErrDuplicateRecord, got %v", err)
	}
}

func TestDeleteMemberWithActiveBorrows(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	seedBorrow(repo, member, book, 1, time.Now().AddDate(0, 0, 7), 45000)

	if err := s.DeleteMember(member.ID); !errors.Is(err, ErrMemberHasBorrows) {
		t.Fatalf("expected ErrMemberHasBorrows, got %v", err)
	}
	if _, ok := repo.members[member.ID]; !ok {
		t.Error("expected the member to survive the refused delete")
	}
}

func TestDeleteMemberWithPendingFines(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	repo.nextID++
	repo.receipts[repo.nextID] = &data.FineReceipt{
		ID:        repo.nextID,
		MemberID:  member.ID,
		Amount:    2000,
		Reason:    "Late return: 2 days",
		IssueDate: time.Now(),
		Status:    data.FineStatusPending,
		Version:   1,
	}

	if err := s.DeleteMember(member.ID); !errors.Is(err, ErrMemberHasFines) {
		t.Fatalf("expected ErrMemberHasFines, got %v", err)
	}
}

func TestDeleteMember(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)

	if err := s.DeleteMember(member.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.members[member.ID]; ok {
		t.Error("expected the member to be deleted")
	}
}

func TestGetMemberStats(t *testing.T) {
	repo := newMockRepo()
	s := newTestService(repo)
	member := seedMember(repo, data.MemberStatusActive)
	book := seedBook(repo, "BK-001", 45000, 5)
	seedBorrow(repo, member, book, 1, time.Now().AddDate(0, 0, 7), 45000)
	seedBorrow(repo, member, book, 1, time.Now().Add(-48*time.Hour), 45000)

	stats, err := s.GetMemberStats(member.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalBorrows != 2 {
		t.Errorf("expected 2 total borrows, got %d", stats.TotalBorrows)
	}
	if stats.ActiveBorrows != 2 {
		t.Errorf("expected 2 active borrows, got %d", stats.ActiveBorrows)
	}
	if stats.OverdueBorrows != 1 {
		t.Errorf("expected 1 overdue borrow, got %d", stats.OverdueBorrows)
	}

	if _, err := s.GetMemberStats(99); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for an unknown member, got %v", err)
	}
}

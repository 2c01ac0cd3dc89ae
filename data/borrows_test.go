package data

import (
	"testing"
	"time"
)

func TestLateDays(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		returnDate time.Time
		want       int
	}{
		{"on due date", due, 0},
		{"before due date", due.Add(-48 * time.Hour), 0},
		{"three days late", due.Add(72 * time.Hour), 3},
		{"partial day rounds up", due.Add(25 * time.Hour), 2},
		{"one second late", due.Add(time.Second), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LateDays(tt.returnDate, due)
			if got != tt.want {
				t.Errorf("LateDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBorrowDeriveStatus(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	returned := now.Add(-time.Hour)
	tests := []struct {
		name   string
		borrow Borrow
		want   string
	}{
		{"before due date", Borrow{DueDate: now.Add(24 * time.Hour)}, BorrowStatusBorrowed},
		{"past due date", Borrow{DueDate: now.Add(-24 * time.Hour)}, BorrowStatusOverdue},
		{"returned trumps overdue", Borrow{DueDate: now.Add(-24 * time.Hour), ReturnDate: &returned}, BorrowStatusReturned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.borrow.DeriveStatus(now)
			if got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBorrowOutstanding(t *testing.T) {
	tests := []struct {
		name   string
		borrow Borrow
		want   int64
	}{
		{"fully paid", Borrow{Price: 5000, Quantity: 2, Paid: 10000}, 0},
		{"partially paid", Borrow{Price: 5000, Quantity: 2, Paid: 4000}, 6000},
		{"fine included", Borrow{Price: 5000, Quantity: 1, Fine: 3000, Paid: 5000}, 3000},
		{"overpaid clamps to zero", Borrow{Price: 5000, Quantity: 1, Paid: 9000}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.borrow.Outstanding()
			if got != tt.want {
				t.Errorf("Outstanding() = %d, want %d", got, tt.want)
			}
		})
	}
}

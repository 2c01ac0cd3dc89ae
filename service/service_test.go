package service

import (
	"io"
	"sync"
	"time"

	"github.com/vqhuy/librarian/config"
	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/internal/jsonlog"
)

func newTestService(repo *mockRepo) *service {
	var cfg config.Config
	cfg.Workflow.FineRatePerDay = 1000
	var wg sync.WaitGroup
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	return New(cfg, &wg, logger, repo)
}

func seedMember(repo *mockRepo, status string) *data.Member {
	repo.nextID++
	member := &data.Member{
		ID:             repo.nextID,
		FullName:       "Nguyen Van An",
		MemberType:     data.MemberTypeStudent,
		DateOfBirth:    time.Date(2000, 5, 20, 0, 0, 0, 0, time.UTC),
		Address:        "1 Dai Co Viet, Hanoi",
		Email:          "an.nguyen@example.com",
		Phone:          "0912345678",
		CardIssueDate:  time.Now().AddDate(-1, 0, 0),
		CardExpiryDate: time.Now().AddDate(1, 0, 0),
		Status:         status,
		Version:        1,
	}
	repo.members[member.ID] = member
	return member
}

func seedBook(repo *mockRepo, code string, price int64, quantity int32) *data.Book {
	repo.nextID++
	book := &data.Book{
		ID:                repo.nextID,
		BookCode:          code,
		Title:             "The Go Programming Language",
		Authors:           []string{"Alan Donovan", "Brian Kernighan"},
		Category:          "programming",
		Publisher:         "Addison-Wesley",
		PublishYear:       int32(time.Now().Year()),
		Price:             price,
		Quantity:          quantity,
		AvailableQuantity: quantity,
		Version:           1,
	}
	repo.books[book.ID] = book
	return book
}

// seedBorrow plants an open borrow record and applies its availability
// decrement, matching what CreateBorrow would have done.
func seedBorrow(repo *mockRepo, member *data.Member, book *data.Book, quantity int32, dueDate time.Time, paid int64) *data.Borrow {
	repo.nextID++
	borrow := &data.Borrow{
		ID:         repo.nextID,
		MemberID:   member.ID,
		BookID:     book.ID,
		BorrowDate: dueDate.AddDate(0, 0, -14),
		DueDate:    dueDate,
		Prepaid:    paid,
		Paid:       paid,
		Price:      book.Price,
		Quantity:   quantity,
		Version:    1,
	}
	repo.borrows[borrow.ID] = borrow
	book.AvailableQuantity -= quantity
	return borrow
}

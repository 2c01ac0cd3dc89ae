package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/mailer"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type borrows interface {
	CreateBorrow(requestBody dto.CreateBorrowRequestBody) ([]*data.Borrow, error)
	GetBorrow(borrowID int64) (*data.Borrow, error)
	ListBorrows() ([]*data.Borrow, error)
	ListMemberBorrows(memberID int64) ([]*data.Borrow, error)
	ListBookBorrows(bookID int64) ([]*data.Borrow, error)
	ListOverdueBorrows() ([]*data.Borrow, error)
	ReturnBorrow(borrowID int64) (*data.Borrow, error)
	UpdateBorrowPaid(borrowID int64, requestBody dto.UpdateBorrowPaidRequestBody) (*data.Borrow, error)
}

// CreateBorrow service lends books to a member. One borrow record is created
// per requested line, in input order, and the prepaid amount is allocated to
// the lines from a running pool: each line takes min(remaining, price x
// quantity). A line with no quantity borrows a single copy. Every line
// commits on its own, so a failure partway through leaves the earlier lines
// in place.
func (s *service) CreateBorrow(requestBody dto.CreateBorrowRequestBody) ([]*data.Borrow, error) {
	v := validator.New()
	v.Check(requestBody.MemberID > 0, "member_id", "must be provided")
	v.Check(len(requestBody.Books) >= 1, "books", "must contain at least 1 book")
	v.Check(requestBody.Prepaid >= 0, "prepaid", "must not be negative")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	member, err := s.repo.GetMember(requestBody.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if member.Status != data.MemberStatusActive {
		return nil, ErrMemberInactive
	}
	borrowDate := time.Now()
	if requestBody.BorrowDate != nil {
		borrowDate = *requestBody.BorrowDate
	}
	now := time.Now()
	remaining := requestBody.Prepaid
	createdBorrows := []*data.Borrow{}
	for _, line := range requestBody.Books {
		book, err := s.repo.GetBook(line.BookID)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRecordNotFound):
				return nil, ErrRecordNotFound
			default:
				return nil, err
			}
		}
		quantity := line.Quantity
		if quantity == 0 {
			quantity = 1
		}
		allocated := book.Price * int64(quantity)
		if allocated > remaining {
			allocated = remaining
		}
		borrow := &data.Borrow{
			MemberID:   member.ID,
			BookID:     book.ID,
			BorrowDate: borrowDate,
			DueDate:    requestBody.DueDate,
			Prepaid:    allocated,
			Paid:       allocated,
			Price:      book.Price,
			Quantity:   quantity,
			Note:       requestBody.Note,
		}
		v = validator.New()
		if data.ValidateBorrow(v, borrow); !v.Valid() {
			ErrFailedValidation = s.failedValidation(v.Errors)
			return nil, ErrFailedValidation
		}
		err = s.repo.CreateBorrow(borrow)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrUnavailable):
				return nil, ErrNotAvailable
			default:
				return nil, err
			}
		}
		remaining -= allocated
		borrow.Status = borrow.DeriveStatus(now)
		borrow.Member = &data.MemberSummary{
			ID:       member.ID,
			FullName: member.FullName,
			Email:    member.Email,
			Phone:    member.Phone,
		}
		borrow.Book = &data.BookSummary{
			ID:       book.ID,
			BookCode: book.BookCode,
			Title:    book.Title,
			Category: book.Category,
			Authors:  book.Authors,
		}
		createdBorrows = append(createdBorrows, borrow)
	}
	return createdBorrows, nil
}

// GetBorrow service retrieves the details of a borrow record.
func (s *service) GetBorrow(borrowID int64) (*data.Borrow, error) {
	borrow, err := s.repo.GetBorrow(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return borrow, nil
}

// ListBorrows service retrieves all borrow records.
func (s *service) ListBorrows() ([]*data.Borrow, error) {
	return s.repo.GetAllBorrows()
}

// ListMemberBorrows service retrieves all borrow records for a member.
func (s *service) ListMemberBorrows(memberID int64) ([]*data.Borrow, error) {
	return s.repo.GetMemberBorrows(memberID)
}

// ListBookBorrows service retrieves all borrow records for a book.
func (s *service) ListBookBorrows(bookID int64) ([]*data.Borrow, error) {
	return s.repo.GetBookBorrows(bookID)
}

// ListOverdueBorrows service retrieves all un-returned borrow records past
// their due date.
func (s *service) ListOverdueBorrows() ([]*data.Borrow, error) {
	return s.repo.GetOverdueBorrows()
}

// ReturnBorrow service records the return of a borrowed book. The return is
// refused while the record is already returned or still carries an
// outstanding balance. A late return accrues a fine of the configured
// per-day rate for every started day past the due date, and a fine receipt
// is issued alongside it; the member is then notified by email in a
// background goroutine.
func (s *service) ReturnBorrow(borrowID int64) (*data.Borrow, error) {
	borrow, err := s.repo.GetBorrow(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if borrow.ReturnDate != nil {
		return nil, ErrAlreadyReturned
	}
	if borrow.Outstanding() > 0 {
		return nil, ErrOutstandingDebt
	}
	now := time.Now()
	daysLate := data.LateDays(now, borrow.DueDate)
	borrow.ReturnDate = &now
	borrow.Fine = int64(daysLate) * s.config.Workflow.FineRatePerDay
	var receipt *data.FineReceipt
	if daysLate > 0 {
		receipt = &data.FineReceipt{
			MemberID:  borrow.MemberID,
			BorrowID:  &borrow.ID,
			Amount:    borrow.Fine,
			Reason:    fmt.Sprintf("Late return: %d days", daysLate),
			IssueDate: now,
			Status:    data.FineStatusPending,
		}
	}
	err = s.repo.ReturnBorrow(borrow, receipt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	if receipt != nil {
		// Send fine notice email in a background goroutine to speed up response time
		s.background(func() {
			emailData := map[string]interface{}{
				"memberName": borrow.Member.FullName,
				"amount":     receipt.Amount,
				"reason":     receipt.Reason,
			}
			mailer := mailer.New(s.config.SMTP.Host, s.config.SMTP.Port, s.config.SMTP.Username, s.config.SMTP.Password, s.config.SMTP.Sender)
			err := mailer.Send(borrow.Member.Email, "fine_notice.tmpl", emailData)
			if err != nil {
				s.logger.PrintError(err, nil)
			}
		})
	}
	borrow.Status = borrow.DeriveStatus(now)
	return borrow, nil
}

// UpdateBorrowPaid service overwrites the paid amount on a borrow record.
func (s *service) UpdateBorrowPaid(borrowID int64, requestBody dto.UpdateBorrowPaidRequestBody) (*data.Borrow, error) {
	borrow, err := s.repo.GetBorrow(borrowID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	v := validator.New()
	v.Check(requestBody.Paid >= 0, "paid", "must not be negative")
	if !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	borrow.Paid = requestBody.Paid
	err = s.repo.UpdateBorrowPaid(borrow)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return borrow, nil
}

package service

import (
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type finereceipts interface {
	CreateFineReceipt(requestBody dto.CreateFineReceiptRequestBody) (*data.FineReceipt, error)
	GetFineReceipt(receiptID int64) (*data.FineReceipt, error)
	ListFineReceipts() ([]*data.FineReceipt, error)
	ListMemberFineReceipts(memberID int64) ([]*data.FineReceipt, error)
	ListUnpaidFineReceipts() ([]*data.FineReceipt, error)
	UpdateFineReceipt(receiptID int64, requestBody dto.UpdateFineReceiptRequestBody) (*data.FineReceipt, error)
	GetFineReceiptStats() (*data.FineReceiptStats, error)
}

// CreateFineReceipt service issues a fine receipt manually. The member must
// exist, and so must the borrow record when one is referenced.
func (s *service) CreateFineReceipt(requestBody dto.CreateFineReceiptRequestBody) (*data.FineReceipt, error) {
	member, err := s.repo.GetMember(requestBody.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.BorrowID != nil {
		_, err := s.repo.GetBorrow(*requestBody.BorrowID)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrRecordNotFound):
				return nil, ErrRecordNotFound
			default:
				return nil, err
			}
		}
	}
	receipt := &data.FineReceipt{
		MemberID:  member.ID,
		BorrowID:  requestBody.BorrowID,
		Amount:    requestBody.Amount,
		Reason:    requestBody.Reason,
		IssueDate: time.Now(),
		Status:    data.FineStatusPending,
		Note:      requestBody.Note,
	}
	v := validator.New()
	if data.ValidateFineReceipt(v, receipt); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.CreateFineReceipt(receipt)
	if err != nil {
		return nil, err
	}
	receipt.Member = &data.MemberSummary{
		ID:       member.ID,
		FullName: member.FullName,
		Email:    member.Email,
		Phone:    member.Phone,
	}
	return receipt, nil
}

// GetFineReceipt service retrieves the details of a fine receipt.
func (s *service) GetFineReceipt(receiptID int64) (*data.FineReceipt, error) {
	receipt, err := s.repo.GetFineReceipt(receiptID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return receipt, nil
}

// ListFineReceipts service retrieves all fine receipts.
func (s *service) ListFineReceipts() ([]*data.FineReceipt, error) {
	return s.repo.GetAllFineReceipts()
}

// ListMemberFineReceipts service retrieves all fine receipts for a member.
func (s *service) ListMemberFineReceipts(memberID int64) ([]*data.FineReceipt, error) {
	return s.repo.GetMemberFineReceipts(memberID)
}

// ListUnpaidFineReceipts service retrieves all receipts still pending
// payment.
func (s *service) ListUnpaidFineReceipts() ([]*data.FineReceipt, error) {
	return s.repo.GetUnpaidFineReceipts()
}

// UpdateFineReceipt service updates a fine receipt. A transition to paid
// stamps the payment date and requires a payment method.
func (s *service) UpdateFineReceipt(receiptID int64, requestBody dto.UpdateFineReceiptRequestBody) (*data.FineReceipt, error) {
	receipt, err := s.repo.GetFineReceipt(receiptID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Amount != nil {
		receipt.Amount = *requestBody.Amount
	}
	if requestBody.Reason != nil {
		receipt.Reason = *requestBody.Reason
	}
	if requestBody.PaymentMethod != nil {
		receipt.PaymentMethod = *requestBody.PaymentMethod
	}
	if requestBody.Note != nil {
		receipt.Note = *requestBody.Note
	}
	if requestBody.Status != nil {
		if *requestBody.Status == data.FineStatusPaid && receipt.Status != data.FineStatusPaid {
			now := time.Now()
			receipt.PaymentDate = &now
		}
		receipt.Status = *requestBody.Status
	}
	v := validator.New()
	if data.ValidateFineReceipt(v, receipt); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateFineReceipt(receipt)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return receipt, nil
}

// GetFineReceiptStats service sums receipt amounts per status.
func (s *service) GetFineReceiptStats() (*data.FineReceiptStats, error) {
	return s.repo.GetFineReceiptStats()
}

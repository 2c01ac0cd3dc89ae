package service

import (
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type members interface {
	CreateMember(requestBody dto.CreateMemberRequestBody) (*data.Member, error)
	GetMember(memberID int64) (*data.Member, error)
	ListMembers() ([]*data.Member, error)
	SearchMembers(query string) ([]*data.Member, error)
	UpdateMember(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error)
	DeleteMember(memberID int64) error
	GetMemberStats(memberID int64) (*data.MemberStats, error)
}

// CreateMember service creates a new member. New members are active, and the
// card issue date defaults to the current time when not supplied.
func (s *service) CreateMember(requestBody dto.CreateMemberRequestBody) (*data.Member, error) {
	member := &data.Member{
		FullName:       requestBody.FullName,
		MemberType:     requestBody.MemberType,
		DateOfBirth:    requestBody.DateOfBirth,
		Address:        requestBody.Address,
		Email:          requestBody.Email,
		Phone:          requestBody.Phone,
		CardExpiryDate: requestBody.CardExpiryDate,
		Status:         data.MemberStatusActive,
		Note:           requestBody.Note,
	}
	if requestBody.CardIssueDate != nil {
		member.CardIssueDate = *requestBody.CardIssueDate
	} else {
		member.CardIssueDate = time.Now()
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateMember(member)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return member, nil
}

// GetMember service retrieves the details of a member.
func (s *service) GetMember(memberID int64) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return member, nil
}

// ListMembers service retrieves all members.
func (s *service) ListMembers() ([]*data.Member, error) {
	return s.repo.GetAllMembers()
}

// SearchMembers service retrieves the members whose name, email, phone or
// address matches the search term.
func (s *service) SearchMembers(query string) ([]*data.Member, error) {
	return s.repo.SearchMembers(query)
}

// UpdateMember service updates the details of a specific member.
func (s *service) UpdateMember(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.FullName != nil {
		member.FullName = *requestBody.FullName
	}
	if requestBody.MemberType != nil {
		member.MemberType = *requestBody.MemberType
	}
	if requestBody.DateOfBirth != nil {
		member.DateOfBirth = *requestBody.DateOfBirth
	}
	if requestBody.Address != nil {
		member.Address = *requestBody.Address
	}
	if requestBody.Email != nil {
		member.Email = *requestBody.Email
	}
	if requestBody.Phone != nil {
		member.Phone = *requestBody.Phone
	}
	if requestBody.CardExpiryDate != nil {
		member.CardExpiryDate = *requestBody.CardExpiryDate
	}
	if requestBody.Status != nil {
		member.Status = *requestBody.Status
	}
	if requestBody.Note != nil {
		member.Note = *requestBody.Note
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateMember(member)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return member, nil
}

// DeleteMember service deletes a member. Deletion is refused while the
// member still holds un-returned borrows or pending fines.
func (s *service) DeleteMember(memberID int64) error {
	activeBorrows, err := s.repo.CountActiveBorrows(memberID)
	if err != nil {
		return err
	}
	if activeBorrows > 0 {
		return ErrMemberHasBorrows
	}
	pendingFines, err := s.repo.CountPendingFines(memberID)
	if err != nil {
		return err
	}
	if pendingFines > 0 {
		return ErrMemberHasFines
	}
	err = s.repo.DeleteMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}

// GetMemberStats service summarizes a member's borrowing and fine history.
func (s *service) GetMemberStats(memberID int64) (*data.MemberStats, error) {
	_, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return s.repo.GetMemberStats(memberID)
}

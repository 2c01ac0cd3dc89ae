package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Member types.
const (
	MemberTypeStudent = "student"
	MemberTypeTeacher = "teacher"
	MemberTypeStaff   = "staff"
	MemberTypeOther   = "other"
)

// Member statuses.
const (
	MemberStatusActive    = "active"
	MemberStatusInactive  = "inactive"
	MemberStatusSuspended = "suspended"
)

// Member defines an enrolled library member.
type Member struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	FullName       string    `json:"full_name"`
	MemberType     string    `json:"member_type"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Address        string    `json:"address"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CardIssueDate  time.Time `json:"card_issue_date"`
	CardExpiryDate time.Time `json:"card_expiry_date"`
	Status         string    `json:"status"`
	Note           string    `json:"note,omitempty"`
	Version        int32     `json:"-"`
}

// MemberSummary is the subset of member fields embedded in borrow and fine
// receipt records.
type MemberSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// MemberStats summarizes a member's borrowing and fine history.
type MemberStats struct {
	TotalBorrows   int64 `json:"totalBorrows"`
	ActiveBorrows  int64 `json:"activeBorrows"`
	OverdueBorrows int64 `json:"overdueBorrows"`
	TotalFines     int64 `json:"totalFines"`
	UnpaidFines    int64 `json:"unpaidFines"`
}

func ValidateMember(v *validator.Validator, member *Member) {
	v.Check(member.FullName != "", "full_name", "must be provided")
	v.Check(len(member.FullName) <= 500, "full_name", "must not be more than 500 bytes long")
	v.Check(member.MemberType != "", "member_type", "must be provided")
	v.Check(validator.In(member.MemberType, MemberTypeStudent, MemberTypeTeacher, MemberTypeStaff, MemberTypeOther), "member_type", "must be one of student, teacher, staff or other")
	v.Check(!member.DateOfBirth.IsZero(), "date_of_birth", "must be provided")
	v.Check(member.DateOfBirth.Before(time.Now()), "date_of_birth", "must be in the past")
	v.Check(member.Address != "", "address", "must be provided")
	v.Check(member.Email != "", "email", "must be provided")
	v.Check(validator.Matches(member.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(member.Phone != "", "phone", "must be provided")
	v.Check(validator.Matches(member.Phone, validator.PhoneRX), "phone", "must be a valid 10-digit phone number")
	v.Check(!member.CardIssueDate.IsZero(), "card_issue_date", "must be provided")
	v.Check(!member.CardExpiryDate.IsZero(), "card_expiry_date", "must be provided")
	v.Check(member.CardExpiryDate.After(member.CardIssueDate), "card_expiry_date", "must be after the card issue date")
	v.Check(validator.In(member.Status, MemberStatusActive, MemberStatusInactive, MemberStatusSuspended), "status", "must be one of active, inactive or suspended")
}

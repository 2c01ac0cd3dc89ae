package dto

import "time"

// CreateMemberRequestBody defines the request body for CreateMember service.
type CreateMemberRequestBody struct {
	FullName       string     `json:"full_name"`
	MemberType     string     `json:"member_type"`
	DateOfBirth    time.Time  `json:"date_of_birth"`
	Address        string     `json:"address"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	CardIssueDate  *time.Time `json:"card_issue_date"`
	CardExpiryDate time.Time  `json:"card_expiry_date"`
	Note           string     `json:"note"`
}

// UpdateMemberRequestBody defines the request body for UpdateMember service.
type UpdateMemberRequestBody struct {
	FullName       *string    `json:"full_name"`
	MemberType     *string    `json:"member_type"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Address        *string    `json:"address"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	CardExpiryDate *time.Time `json:"card_expiry_date"`
	Status         *string    `json:"status"`
	Note           *string    `json:"note"`
}

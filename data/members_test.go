package data

import (
	"testing"
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

func validMember() *Member {
	now := time.Now()
	return &Member{
		FullName:       "Nguyen Van A",
		MemberType:     MemberTypeStudent,
		DateOfBirth:    now.AddDate(-20, 0, 0),
		Address:        "12 Tran Hung Dao",
		Email:          "nguyen.van.a@example.com",
		Phone:          "0912345678",
		CardIssueDate:  now,
		CardExpiryDate: now.AddDate(1, 0, 0),
		Status:         MemberStatusActive,
	}
}

func TestValidateMember(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Member)
		wantKey string
	}{
		{"valid", func(m *Member) {}, ""},
		{"missing full name", func(m *Member) { m.FullName = "" }, "full_name"},
		{"bad member type", func(m *Member) { m.MemberType = "alumni" }, "member_type"},
		{"future date of birth", func(m *Member) { m.DateOfBirth = time.Now().AddDate(1, 0, 0) }, "date_of_birth"},
		{"bad email", func(m *Member) { m.Email = "not-an-email" }, "email"},
		{"bad phone", func(m *Member) { m.Phone = "123" }, "phone"},
		{"expiry before issue", func(m *Member) { m.CardExpiryDate = m.CardIssueDate.AddDate(0, 0, -1) }, "card_expiry_date"},
		{"bad status", func(m *Member) { m.Status = "banned" }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := validMember()
			tt.mutate(member)
			v := validator.New()
			ValidateMember(v, member)
			if tt.wantKey == "" {
				if !v.Valid() {
					t.Errorf("expected valid member, got errors %v", v.Errors)
				}
				return
			}
			if v.Valid() {
				t.Fatalf("expected validation error for %q, got none", tt.wantKey)
			}
			if _, ok := v.Errors[tt.wantKey]; !ok {
				t.Errorf("expected error keyed %q, got %v", tt.wantKey, v.Errors)
			}
		})
	}
}

package data

import (
	"time"

	"github.com/vqhuy/librarian/internal/validator"
)

// Rule value types.
const (
	RuleTypeNumber  = "number"
	RuleTypeString  = "string"
	RuleTypeBoolean = "boolean"
	RuleTypeDate    = "date"
	RuleTypeArray   = "array"
)

// Rule is a named configuration value with a declared type. Rules are read
// by the administrative UI to validate member age and borrowing limits at
// entry time; the backend stores and serves them but does not enforce them.
type Rule struct {
	ID            int64       `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	Name          string      `json:"name"`
	Value         interface{} `json:"value"`
	Type          string      `json:"type"`
	Description   string      `json:"description"`
	IsActive      bool        `json:"is_active"`
	EffectiveDate time.Time   `json:"effective_date"`
	ExpiryDate    *time.Time  `json:"expiry_date,omitempty"`
	CreatedBy     string      `json:"created_by"`
	UpdatedBy     string      `json:"updated_by"`
	Version       int32       `json:"-"`
}

// valueMatchesType reports whether a decoded JSON value has the Go shape
// the declared rule type requires. Date values arrive as RFC 3339 strings.
func valueMatchesType(value interface{}, ruleType string) bool {
	switch ruleType {
	case RuleTypeNumber:
		switch value.(type) {
		case float64, int64, int:
			return true
		}
		return false
	case RuleTypeString:
		_, ok := value.(string)
		return ok
	case RuleTypeBoolean:
		_, ok := value.(bool)
		return ok
	case RuleTypeDate:
		switch v := value.(type) {
		case time.Time:
			return true
		case string:
			_, err := time.Parse(time.RFC3339, v)
			return err == nil
		}
		return false
	case RuleTypeArray:
		_, ok := value.([]interface{})
		return ok
	}
	return false
}

func ValidateRule(v *validator.Validator, rule *Rule) {
	v.Check(rule.Name != "", "name", "must be provided")
	v.Check(len(rule.Name) <= 200, "name", "must not be more than 200 bytes long")
	v.Check(rule.Value != nil, "value", "must be provided")
	v.Check(rule.Type != "", "type", "must be provided")
	v.Check(validator.In(rule.Type, RuleTypeNumber, RuleTypeString, RuleTypeBoolean, RuleTypeDate, RuleTypeArray), "type", "must be one of number, string, boolean, date or array")
	if rule.Value != nil && validator.In(rule.Type, RuleTypeNumber, RuleTypeString, RuleTypeBoolean, RuleTypeDate, RuleTypeArray) {
		v.Check(valueMatchesType(rule.Value, rule.Type), "value", "must be a "+rule.Type)
	}
	v.Check(rule.Description != "", "description", "must be provided")
	v.Check(!rule.EffectiveDate.IsZero(), "effective_date", "must be provided")
	if rule.ExpiryDate != nil {
		v.Check(rule.ExpiryDate.After(rule.EffectiveDate), "expiry_date", "must be after the effective date")
	}
	v.Check(rule.CreatedBy != "", "created_by", "must be provided")
	v.Check(rule.UpdatedBy != "", "updated_by", "must be provided")
}

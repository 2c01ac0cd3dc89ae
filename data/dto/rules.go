package dto

import "time"

// CreateRuleRequestBody defines the request body for CreateRule service.
type CreateRuleRequestBody struct {
	Name          string      `json:"name"`
	Value         interface{} `json:"value"`
	Type          string      `json:"type"`
	Description   string      `json:"description"`
	EffectiveDate *time.Time  `json:"effective_date"`
	ExpiryDate    *time.Time  `json:"expiry_date"`
	CreatedBy     string      `json:"created_by"`
}

// UpdateRuleRequestBody defines the request body for UpdateRule service.
type UpdateRuleRequestBody struct {
	Value         interface{} `json:"value"`
	Description   *string     `json:"description"`
	EffectiveDate *time.Time  `json:"effective_date"`
	ExpiryDate    *time.Time  `json:"expiry_date"`
	IsActive      *bool       `json:"is_active"`
	UpdatedBy     *string     `json:"updated_by"`
}

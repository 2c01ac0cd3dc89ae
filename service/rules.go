package service

import (
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
	"github.com/vqhuy/librarian/data/dto"
	"github.com/vqhuy/librarian/internal/validator"
	"github.com/vqhuy/librarian/repository"
)

type rules interface {
	CreateRule(requestBody dto.CreateRuleRequestBody) (*data.Rule, error)
	GetRule(ruleID int64) (*data.Rule, error)
	GetRuleByName(name string) (*data.Rule, error)
	ListRules() ([]*data.Rule, error)
	ListActiveRules() ([]*data.Rule, error)
	UpdateRule(ruleID int64, requestBody dto.UpdateRuleRequestBody) (*data.Rule, error)
	DeleteRule(ruleID int64) error
}

// CreateRule service creates a new rule. New rules are active, and the
// effective date defaults to the current time when not supplied.
func (s *service) CreateRule(requestBody dto.CreateRuleRequestBody) (*data.Rule, error) {
	rule := &data.Rule{
		Name:        requestBody.Name,
		Value:       requestBody.Value,
		Type:        requestBody.Type,
		Description: requestBody.Description,
		IsActive:    true,
		ExpiryDate:  requestBody.ExpiryDate,
		CreatedBy:   requestBody.CreatedBy,
		UpdatedBy:   requestBody.CreatedBy,
	}
	if requestBody.EffectiveDate != nil {
		rule.EffectiveDate = *requestBody.EffectiveDate
	} else {
		rule.EffectiveDate = time.Now()
	}
	v := validator.New()
	if data.ValidateRule(v, rule); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err := s.repo.CreateRule(rule)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, ErrDuplicateRecord
		default:
			return nil, err
		}
	}
	return rule, nil
}

// GetRule service retrieves the details of a rule.
func (s *service) GetRule(ruleID int64) (*data.Rule, error) {
	rule, err := s.repo.GetRule(ruleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return rule, nil
}

// GetRuleByName service retrieves a rule by its unique name.
func (s *service) GetRuleByName(name string) (*data.Rule, error) {
	rule, err := s.repo.GetRuleByName(name)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return rule, nil
}

// ListRules service retrieves all rules.
func (s *service) ListRules() ([]*data.Rule, error) {
	return s.repo.GetAllRules()
}

// ListActiveRules service retrieves rules currently in effect.
func (s *service) ListActiveRules() ([]*data.Rule, error) {
	return s.repo.GetActiveRules()
}

// UpdateRule service updates a rule.
func (s *service) UpdateRule(ruleID int64, requestBody dto.UpdateRuleRequestBody) (*data.Rule, error) {
	rule, err := s.repo.GetRule(ruleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Value != nil {
		rule.Value = requestBody.Value
	}
	if requestBody.Description != nil {
		rule.Description = *requestBody.Description
	}
	if requestBody.EffectiveDate != nil {
		rule.EffectiveDate = *requestBody.EffectiveDate
	}
	if requestBody.ExpiryDate != nil {
		rule.ExpiryDate = requestBody.ExpiryDate
	}
	if requestBody.IsActive != nil {
		rule.IsActive = *requestBody.IsActive
	}
	if requestBody.UpdatedBy != nil {
		rule.UpdatedBy = *requestBody.UpdatedBy
	}
	v := validator.New()
	if data.ValidateRule(v, rule); !v.Valid() {
		ErrFailedValidation = s.failedValidation(v.Errors)
		return nil, ErrFailedValidation
	}
	err = s.repo.UpdateRule(rule)
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
	return rule, nil
}

// DeleteRule service deletes a rule.
func (s *service) DeleteRule(ruleID int64) error {
	err := s.repo.DeleteRule(ruleID)
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

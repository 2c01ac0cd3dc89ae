package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/vqhuy/librarian/data"
)

type rules interface {
	CreateRule(rule *data.Rule) error
	GetRule(ruleID int64) (*data.Rule, error)
	GetRuleByName(name string) (*data.Rule, error)
	GetAllRules() ([]*data.Rule, error)
	GetActiveRules() ([]*data.Rule, error)
	UpdateRule(rule *data.Rule) error
	DeleteRule(ruleID int64) error
}

// CreateRule inserts a new rule. The value is stored as jsonb so that every
// declared rule type round-trips untouched.
func (r *repository) CreateRule(rule *data.Rule) error {
	value, err := json.Marshal(rule.Value)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO rules (name, value, type, description, is_active, effective_date, expiry_date, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version`
	args := []interface{}{
		rule.Name,
		value,
		rule.Type,
		rule.Description,
		rule.IsActive,
		rule.EffectiveDate,
		rule.ExpiryDate,
		rule.CreatedBy,
		rule.UpdatedBy,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "rules_name_key"`:
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetRule retrieves a rule by its ID.
func (r *repository) GetRule(ruleID int64) (*data.Rule, error) {
	if ruleID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, created_at, name, value, type, description, is_active, effective_date, expiry_date, created_by, updated_by, version
		FROM rules
		WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.getRuleRow(r.db.QueryRowContext(ctx, query, ruleID))
}

// GetRuleByName retrieves a rule by its unique name.
func (r *repository) GetRuleByName(name string) (*data.Rule, error) {
	query := `
		SELECT id, created_at, name, value, type, description, is_active, effective_date, expiry_date, created_by, updated_by, version
		FROM rules
		WHERE name = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return r.getRuleRow(r.db.QueryRowContext(ctx, query, name))
}

func (r *repository) getRuleRow(row rowScanner) (*data.Rule, error) {
	rule, err := scanRule(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return rule, nil
}

// GetAllRules retrieves all rules ordered by name.
func (r *repository) GetAllRules() ([]*data.Rule, error) {
	query := `
		SELECT id, created_at, name, value, type, description, is_active, effective_date, expiry_date, created_by, updated_by, version
		FROM rules
		ORDER BY name ASC`
	return r.queryRules(query)
}

// GetActiveRules retrieves rules that are flagged active and whose effective
// window covers the current time.
func (r *repository) GetActiveRules() ([]*data.Rule, error) {
	query := `
		SELECT id, created_at, name, value, type, description, is_active, effective_date, expiry_date, created_by, updated_by, version
		FROM rules
		WHERE is_active = true AND effective_date <= now() AND (expiry_date IS NULL OR expiry_date > now())
		ORDER BY name ASC`
	return r.queryRules(query)
}

func (r *repository) queryRules(query string, args ...interface{}) ([]*data.Rule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rules := []*data.Rule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

func scanRule(row rowScanner) (*data.Rule, error) {
	var rule data.Rule
	var value []byte
	err := row.Scan(
		&rule.ID,
		&rule.CreatedAt,
		&rule.Name,
		&value,
		&rule.Type,
		&rule.Description,
		&rule.IsActive,
		&rule.EffectiveDate,
		&rule.ExpiryDate,
		&rule.CreatedBy,
		&rule.UpdatedBy,
		&rule.Version,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(value, &rule.Value); err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule updates a rule, guarded by an optimistic concurrency check on
// the version column.
func (r *repository) UpdateRule(rule *data.Rule) error {
	value, err := json.Marshal(rule.Value)
	if err != nil {
		return err
	}
	query := `
		UPDATE rules
		SET name = $1, value = $2, type = $3, description = $4, is_active = $5, effective_date = $6, expiry_date = $7, updated_by = $8, version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version`
	args := []interface{}{
		rule.Name,
		value,
		rule.Type,
		rule.Description,
		rule.IsActive,
		rule.EffectiveDate,
		rule.ExpiryDate,
		rule.UpdatedBy,
		rule.ID,
		rule.Version,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&rule.Version)
	if err != nil {
		switch {
		case err.Error() == `pq: duplicate key value violates unique constraint "rules_name_key"`:
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}

// DeleteRule deletes a rule by its ID.
func (r *repository) DeleteRule(ruleID int64) error {
	if ruleID < 1 {
		return ErrRecordNotFound
	}
	query := `DELETE FROM rules WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	result, err := r.db.ExecContext(ctx, query, ruleID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

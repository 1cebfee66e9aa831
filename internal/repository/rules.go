package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/digitalwellness/guardian/backend/internal/models"
)

type ruleRepository struct {
	db *DB
}

// NewRuleRepository creates the custom intervention rule store. Built-in
// rules live in code; only custom rules and their feedback are persisted.
func NewRuleRepository(db *DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Insert(ctx context.Context, rule models.InterventionRule) error {
	trigger, err := json.Marshal(rule.Trigger)
	if err != nil {
		return fmt.Errorf("marshal trigger: %w", err)
	}

	_, err = r.db.conn.ExecContext(ctx, `
		INSERT INTO intervention_rules (id, title, action_text, trigger_condition, priority, effectiveness, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.Title, rule.ActionText, string(trigger),
		string(rule.Priority), rule.Effectiveness, rule.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert rule: %w", err)
	}
	return nil
}

func (r *ruleRepository) UpdateEffectiveness(ctx context.Context, id string, rating float64) error {
	res, err := r.db.conn.ExecContext(ctx,
		`UPDATE intervention_rules SET effectiveness = ? WHERE id = ?`, rating, id)
	if err != nil {
		return fmt.Errorf("update effectiveness: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	return nil
}

func (r *ruleRepository) GetAll(ctx context.Context) ([]models.InterventionRule, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, title, action_text, trigger_condition, priority, effectiveness, created_at
		FROM intervention_rules
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	var rules []models.InterventionRule
	for rows.Next() {
		var (
			rule      models.InterventionRule
			trigger   string
			priority  string
			createdAt string
		)
		if err := rows.Scan(&rule.ID, &rule.Title, &rule.ActionText, &trigger,
			&priority, &rule.Effectiveness, &createdAt); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(trigger), &rule.Trigger); err != nil {
			return nil, fmt.Errorf("unmarshal trigger: %w", err)
		}
		rule.Priority = models.RulePriority(priority)
		rule.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse rule created_at: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

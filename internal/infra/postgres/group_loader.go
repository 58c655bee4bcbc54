package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"geotrivia-service/internal/domain"
)

// GroupLoader loads question-group JSONB from Postgres. Row order (the
// position column) defines the display order of groups.
type GroupLoader struct {
	pool *pgxpool.Pool
}

func NewGroupLoader(pool *pgxpool.Pool) *GroupLoader {
	return &GroupLoader{pool: pool}
}

func (l *GroupLoader) LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_groups WHERE id=$1`, groupID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionGroup{}, domain.ErrGroupNotFound
	}
	if err != nil {
		return domain.QuestionGroup{}, fmt.Errorf("load group: %w", err)
	}
	var group domain.QuestionGroup
	if err := json.Unmarshal(raw, &group); err != nil {
		return domain.QuestionGroup{}, fmt.Errorf("unmarshal group: %w", err)
	}
	return group, nil
}

func (l *GroupLoader) LoadGroups(ctx context.Context) ([]domain.QuestionGroup, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM question_groups ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.QuestionGroup
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		var group domain.QuestionGroup
		if err := json.Unmarshal(raw, &group); err != nil {
			return nil, fmt.Errorf("unmarshal group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/repository/mysql/model"
)

type counterStore struct {
	DB *gorm.DB
}

var _ domain.CounterStore = (*counterStore)(nil)

// NewCounterStore creates the durable counter store. It is handed the root
// DB handle, never a transaction: every increment is a single autocommitted
// statement, so it stays durable regardless of what happens to the caller's
// surrounding request.
func NewCounterStore(db *gorm.DB) *counterStore {
	return &counterStore{db}
}

func (m *counterStore) Increment(ctx context.Context, entity domain.ContentType, id int64, kind domain.CounterKind, delta int64) (int64, error) {
	insertVal := delta
	if insertVal < 0 {
		// a decrement on a missing row starts the counter at zero
		insertVal = 0
	}
	row := model.Counter{
		EntityType: string(entity),
		EntityID:   id,
		Kind:       string(kind),
		Value:      insertVal,
	}
	err := m.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "kind"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value": gorm.Expr("GREATEST(value + ?, 0)", delta),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, err
	}

	// the upsert is the atomic mutation; the returned value is a fresh read
	return m.Read(ctx, entity, id, kind)
}

func (m *counterStore) Read(ctx context.Context, entity domain.ContentType, id int64, kind domain.CounterKind) (int64, error) {
	var row model.Counter
	err := m.DB.WithContext(ctx).
		First(&row, "entity_type = ? AND entity_id = ? AND kind = ?", string(entity), id, string(kind)).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Value, nil
}

func (m *counterStore) MRead(ctx context.Context, entity domain.ContentType, ids []int64, kind domain.CounterKind) (map[int64]int64, error) {
	res := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return res, nil
	}

	var rows []model.Counter
	err := m.DB.WithContext(ctx).
		Where("entity_type = ? AND entity_id IN ? AND kind = ?", string(entity), ids, string(kind)).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		res[id] = 0
	}
	for i := range rows {
		res[rows[i].EntityID] = rows[i].Value
	}
	return res, nil
}

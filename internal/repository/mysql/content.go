package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/repository/mysql/model"
)

type contentRepository struct {
	DB *gorm.DB
}

var _ domain.ContentRepository = (*contentRepository)(nil)

// NewContentRepository creates the read-side repository over the content
// table owned by the CRUD layer.
func NewContentRepository(db *gorm.DB) *contentRepository {
	return &contentRepository{db}
}

func (m *contentRepository) GetByID(ctx context.Context, id int64) (res domain.Content, err error) {
	var content model.Content
	err = m.DB.WithContext(ctx).Preload("Tags").First(&content, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res, domain.ErrNotFound
		}
		return res, err
	}
	res = content.ToDomain()
	return
}

func (m *contentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *contentRepository) FetchCreatedSince(ctx context.Context, since time.Time) ([]domain.Content, error) {
	var contents []model.Content
	err := m.DB.WithContext(ctx).
		Preload("Tags").
		Where("created_at >= ?", since).
		Order("id").
		Find(&contents).
		Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Content, len(contents))
	for i := range contents {
		res[i] = contents[i].ToDomain()
	}
	return res, nil
}

func (m *contentRepository) FetchIDs(ctx context.Context, cursor, limit int64) (ids []int64, err error) {
	err = m.DB.WithContext(ctx).
		Model(&model.Content{}).
		Select("id").
		Where("id > ?", cursor).
		Order("id").
		Limit(int(limit)).
		Find(&ids).Error
	return
}

package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/repository/mysql/model"
)

type playlistRepository struct {
	DB *gorm.DB
}

var _ domain.PlaylistRepository = (*playlistRepository)(nil)

// NewPlaylistRepository creates the read-side repository for playlist rows,
// which live on the content table with content_type = "playlist".
func NewPlaylistRepository(db *gorm.DB) *playlistRepository {
	return &playlistRepository{db}
}

func (m *playlistRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.Content{}).
		Where("id = ? AND content_type = ?", id, string(domain.ContentPlaylist)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *playlistRepository) FetchPublicExcept(ctx context.Context, excludeID int64) ([]domain.PlaylistSummary, error) {
	var contents []model.Content
	err := m.DB.WithContext(ctx).
		Select("id, title").
		Where("content_type = ? AND is_public = ? AND id <> ?", string(domain.ContentPlaylist), true, excludeID).
		Order("id").
		Find(&contents).
		Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.PlaylistSummary, len(contents))
	for i := range contents {
		res[i] = domain.PlaylistSummary{
			ID:    contents[i].ID,
			Title: contents[i].Title,
		}
	}
	return res, nil
}

package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/repository/mysql/model"
)

// mysqlDupEntry is the server error number for a unique key violation.
const mysqlDupEntry = 1062

type likeRecordRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRecordRepository = (*likeRecordRepository)(nil)

func NewLikeRecordRepository(db *gorm.DB) *likeRecordRepository {
	return &likeRecordRepository{db}
}

func (m *likeRecordRepository) Exists(ctx context.Context, memberID, contentID int64) (bool, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.LikeRecord{}).
		Where("member_id = ? AND content_id = ?", memberID, contentID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *likeRecordRepository) Insert(ctx context.Context, memberID, contentID int64) error {
	record := &model.LikeRecord{
		MemberID:  memberID,
		ContentID: contentID,
		CreatedAt: time.Now(),
	}
	result := m.DB.WithContext(ctx).Create(record)
	if result.Error != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(result.Error, &mysqlErr) && mysqlErr.Number == mysqlDupEntry {
			return domain.ErrConflict
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (m *likeRecordRepository) Delete(ctx context.Context, memberID, contentID int64) error {
	result := m.DB.WithContext(ctx).
		Where("member_id = ? AND content_id = ?", memberID, contentID).
		Delete(&model.LikeRecord{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *likeRecordRepository) CountByContent(ctx context.Context, contentID int64) (int64, error) {
	var count int64
	err := m.DB.WithContext(ctx).
		Model(&model.LikeRecord{}).
		Where("content_id = ?", contentID).
		Count(&count).
		Error
	return count, err
}

package model

import (
	"time"

	"github.com/curata-io/curata/domain"
)

// LikeRecord rows are the authoritative like membership. The composite
// primary key doubles as the uniqueness constraint concurrent toggles rely
// on; deletion is physical.
type LikeRecord struct {
	MemberID  int64     `gorm:"column:member_id;primaryKey"`
	ContentID int64     `gorm:"column:content_id;primaryKey"`
	CreatedAt time.Time `gorm:"type:datetime"`
}

func (LikeRecord) TableName() string {
	return "like_records"
}

func NewLikeRecordFromDomain(lr domain.LikeRecord) LikeRecord {
	return LikeRecord{
		MemberID:  lr.MemberID,
		ContentID: lr.ContentID,
		CreatedAt: lr.CreatedAt,
	}
}

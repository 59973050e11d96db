package model

import (
	"time"

	"github.com/curata-io/curata/domain"
)

type Content struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	Type      string       `gorm:"column:content_type;type:varchar(16);not null;index"`
	Title     string       `gorm:"type:varchar(100);not null"`
	MemberID  int64        `gorm:"column:member_id;not null"`
	Public    bool         `gorm:"column:is_public;not null;default:true"`
	UpdatedAt time.Time    `gorm:"type:datetime"`
	CreatedAt time.Time    `gorm:"type:datetime;index"`
	Tags      []ContentTag `gorm:"foreignKey:ContentID"`
}

func (Content) TableName() string {
	return "content"
}

func (m *Content) ToDomain() domain.Content {
	tags := make([]string, len(m.Tags))
	for i := range m.Tags {
		tags[i] = m.Tags[i].TagName
	}
	return domain.Content{
		ID:        m.ID,
		Type:      domain.ContentType(m.Type),
		Title:     m.Title,
		MemberID:  m.MemberID,
		Tags:      tags,
		Public:    m.Public,
		UpdatedAt: m.UpdatedAt,
		CreatedAt: m.CreatedAt,
	}
}

func NewContentFromDomain(c *domain.Content) *Content {
	tags := make([]ContentTag, len(c.Tags))
	for i, name := range c.Tags {
		tags[i] = ContentTag{ContentID: c.ID, TagName: name}
	}
	return &Content{
		ID:        c.ID,
		Type:      string(c.Type),
		Title:     c.Title,
		MemberID:  c.MemberID,
		Public:    c.Public,
		UpdatedAt: c.UpdatedAt,
		CreatedAt: c.CreatedAt,
		Tags:      tags,
	}
}

type ContentTag struct {
	ContentID int64  `gorm:"column:content_id;primaryKey"`
	TagName   string `gorm:"column:tag_name;type:varchar(45);primaryKey"`
}

func (ContentTag) TableName() string {
	return "content_tags"
}

package model

type Counter struct {
	EntityType string `gorm:"column:entity_type;type:varchar(16);primaryKey"`
	EntityID   int64  `gorm:"column:entity_id;primaryKey"`
	Kind       string `gorm:"column:kind;type:varchar(8);primaryKey"`
	Value      int64  `gorm:"column:value;not null;default:0"`
}

func (Counter) TableName() string {
	return "counters"
}

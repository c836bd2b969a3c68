package model

// Season 赛季表，对应 seasons
// 创建后不可变；同一时刻至多一个 IsCurrent 为 true
type Season struct {
	ID        int    `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name      string `gorm:"type:varchar(100);not null"  json:"name"`
	IsCurrent bool   `gorm:"not null;default:false"      json:"is_current"`
	BaseModel
}

// TableName 指定表名
func (Season) TableName() string { return "seasons" }

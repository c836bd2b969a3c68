package model

// Student 学员表，对应 students
type Student struct {
	ID         int     `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name       string  `gorm:"type:varchar(200);not null" json:"name"`
	SeasonID   int     `gorm:"not null;index"             json:"season_id"`
	ProfileURL *string `gorm:"type:varchar(500)"          json:"profile_url,omitempty"`
	BaseModel

	// 关联
	Season *Season `gorm:"foreignKey:SeasonID;references:ID" json:"season,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

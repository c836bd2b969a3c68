package model

// Project 学员作品表，对应 projects
// 运行期仅 IsFeatured 会被修改
type Project struct {
	ID          int     `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title       *string `gorm:"type:varchar(200)"          json:"title,omitempty"`
	Student     string  `gorm:"type:varchar(200);not null" json:"student"`
	Description *string `gorm:"type:text"                  json:"description,omitempty"`
	URL         string  `gorm:"column:url;type:varchar(500);not null"        json:"url"`
	GithubURL   *string `gorm:"column:github_url;type:varchar(500)"          json:"github_url,omitempty"`
	Category    *string `gorm:"type:varchar(100)"          json:"category,omitempty"`
	Grade       *string `gorm:"type:varchar(20)"           json:"grade,omitempty"`
	SeasonID    int     `gorm:"not null;index"             json:"season_id"`
	IsFeatured  bool    `gorm:"not null;default:false"     json:"is_featured"`
	BaseModel
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

package dto

// ── 学员模块 DTO ──

// StudentQuery GET /api/students 查询参数
type StudentQuery struct {
	SeasonID       *int `form:"seasonId"       binding:"omitempty,min=1"`
	WithSeasonInfo bool `form:"withSeasonInfo"`
}

// StudentResponse 学员信息响应
type StudentResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SeasonID   int    `json:"seasonId"`
	ProfileURL string `json:"profileUrl,omitempty"`
	Season     string `json:"season,omitempty"` // withSeasonInfo=true 时返回赛季名称
}

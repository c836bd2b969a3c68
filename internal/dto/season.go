package dto

// ── 赛季模块 DTO ──

// SeasonResponse 赛季信息响应
type SeasonResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"isCurrent"`
}

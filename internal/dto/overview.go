package dto

// OverviewResponse 首页聚合数据
type OverviewResponse struct {
	Season   *SeasonResponse   `json:"season,omitempty"`
	Featured []ProjectResponse `json:"featured"`
	Stats    OverviewStats     `json:"stats"`
}

// OverviewStats 首页统计数字
type OverviewStats struct {
	Seasons  int64 `json:"seasons"`
	Students int64 `json:"students"`
	Projects int64 `json:"projects"`
}

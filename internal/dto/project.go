package dto

// ── 作品模块 DTO ──

// ProjectQuery GET /api/projects 查询参数
type ProjectQuery struct {
	SeasonID        *int `form:"seasonId"        binding:"omitempty,min=1"`
	Featured        bool `form:"featured"`
	WithStudentInfo bool `form:"withStudentInfo"`
}

// ProjectResponse 作品信息响应
type ProjectResponse struct {
	ID          int          `json:"id"`
	Title       string       `json:"title,omitempty"`
	Student     string       `json:"student"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url"`
	GithubURL   string       `json:"githubUrl,omitempty"`
	Category    string       `json:"category,omitempty"`
	Grade       string       `json:"grade,omitempty"`
	SeasonID    int          `json:"seasonId"`
	IsFeatured  bool         `json:"isFeatured"`
	StudentInfo *StudentInfo `json:"studentInfo,omitempty"`
}

// StudentInfo 作品关联的学员展示信息（withStudentInfo=true 时返回）
type StudentInfo struct {
	ID         int    `json:"id,omitempty"`
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// FixFeaturedResponse GET /api/fix-featured 响应
// 保持原站点的响应结构，不使用统一信封
type FixFeaturedResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Count    int               `json:"count"`
	Projects []ProjectResponse `json:"projects"`
	Error    string            `json:"error,omitempty"`
}

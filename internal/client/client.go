// Package client 是展示站 HTTP API 的调用端，供赛季注册表与列表控制器使用
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"iyf-showcase/backend/internal/dto"
	pkgerrors "iyf-showcase/backend/pkg/errors"
)

// Client 展示站 API 客户端
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New 创建客户端；httpClient 为 nil 时使用 http.DefaultClient
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// envelope 服务端统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ── Seasons ──

// ListSeasons 拉取赛季列表；任何失败均包装为 LoadError
func (c *Client) ListSeasons(ctx context.Context) ([]dto.SeasonResponse, error) {
	var seasons []dto.SeasonResponse
	if _, err := c.get(ctx, "/api/seasons", nil, &seasons); err != nil {
		return nil, &pkgerrors.LoadError{Err: err}
	}
	return seasons, nil
}

// ── Projects ──

// FetchProjects GET /api/projects
func (c *Client) FetchProjects(ctx context.Context, q dto.ProjectQuery) ([]dto.ProjectResponse, error) {
	params := url.Values{}
	if q.SeasonID != nil {
		params.Set("seasonId", strconv.Itoa(*q.SeasonID))
	}
	if q.Featured {
		params.Set("featured", "true")
	}
	if q.WithStudentInfo {
		params.Set("withStudentInfo", "true")
	}

	fallback := "Failed to fetch projects"
	if q.Featured {
		fallback = "Failed to fetch featured projects"
	}

	var projects []dto.ProjectResponse
	if msg, err := c.get(ctx, "/api/projects", params, &projects); err != nil {
		return nil, queryError("fetchProjects", params, msg, fallback, err)
	}
	return projects, nil
}

// ── Students ──

// FetchStudents GET /api/students
func (c *Client) FetchStudents(ctx context.Context, q dto.StudentQuery) ([]dto.StudentResponse, error) {
	params := url.Values{}
	if q.SeasonID != nil {
		params.Set("seasonId", strconv.Itoa(*q.SeasonID))
	}
	if q.WithSeasonInfo {
		params.Set("withSeasonInfo", "true")
	}

	var students []dto.StudentResponse
	if msg, err := c.get(ctx, "/api/students", params, &students); err != nil {
		return nil, queryError("fetchStudents", params, msg, "Failed to fetch students", err)
	}
	return students, nil
}

// ── 内部辅助方法 ──

// get 发起 GET 请求并将信封中的 data 解码到 dst
// 返回值 msg 为服务端给出的错误消息（可能为空）
func (c *Client) get(ctx context.Context, path string, params url.Values, dst interface{}) (string, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("请求失败", zap.String("url", u), zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("服务端返回错误",
			zap.String("url", u),
			zap.Int("status", resp.StatusCode),
			zap.Int("code", env.Code),
		)
		return env.Message, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return "", fmt.Errorf("decode data: %w", err)
	}
	return "", nil
}

func queryError(op string, params url.Values, msg, fallback string, err error) *pkgerrors.QueryError {
	if msg == "" {
		msg = fallback
	}
	p := make(map[string]string, len(params))
	for k := range params {
		p[k] = params.Get(k)
	}
	return &pkgerrors.QueryError{Op: op, Params: p, Message: msg, Err: err}
}

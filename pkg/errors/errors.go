package errors

import "fmt"

// LoadError 赛季列表在启动时不可用
// 调用方应降级为空列表继续运行，而不是中断
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load seasons: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// QueryError 作品/学员查询失败
// Params 保留原始请求参数，供调用方手动重试
type QueryError struct {
	Op      string
	Params  map[string]string
	Message string
	Err     error
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MutationError 精选作品修复失败
// 选取与更新在同一事务中，事务失败时整体回滚
// 事务提交后的回读失败也返回此错误，此时标记已生效
type MutationError struct {
	SeasonID int
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("mark featured projects for season %d: %v", e.SeasonID, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

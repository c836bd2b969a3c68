package listing

import (
	"context"
	"errors"

	pkgerrors "iyf-showcase/backend/pkg/errors"
)

// inflight 记录某个状态槽位上最新一次请求
// 只有 gen 与当前值相同的响应才允许写回状态
// 所有方法须在所属控制器持锁时调用
type inflight struct {
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// begin 取消上一次请求并开始新一代
func (f *inflight) begin() (context.Context, context.CancelFunc, uint64, chan struct{}) {
	f.stop()
	f.gen++
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.done = make(chan struct{})
	return ctx, cancel, f.gen, f.done
}

func (f *inflight) current(gen uint64) bool { return f.gen == gen }

func (f *inflight) stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// settled 最新一次请求完成时关闭；从未发起请求时立即关闭
func (f *inflight) settled() <-chan struct{} {
	if f.done == nil {
		return closedChan()
	}
	return f.done
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// errorMessage 面向用户的错误文案
func errorMessage(err error) string {
	var qe *pkgerrors.QueryError
	if errors.As(err, &qe) && qe.Message != "" {
		return qe.Message
	}
	return err.Error()
}

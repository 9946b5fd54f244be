package ai

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"ayura/internal/pkg/common"
)

// job 隊列請求
type job struct {
	ctx    context.Context
	system string
	prompt string
	result chan jobResult
}

type jobResult struct {
	reply string
	err   error
}

// QueueStatus 隊列狀態
type QueueStatus struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Queue 以固定數量的 worker 限制同時送往模型的請求
type Queue struct {
	inner     Completer
	queue     chan *job
	done      chan struct{}
	workers   int
	maxSize   int
	processed int64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewQueue 創建隊列並啟動 worker
func NewQueue(inner Completer, workers, maxSize int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if maxSize <= 0 {
		maxSize = workers
	}
	q := &Queue{
		inner:   inner,
		queue:   make(chan *job, maxSize),
		done:    make(chan struct{}),
		workers: workers,
		maxSize: maxSize,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *Queue) work() {
	defer q.wg.Done()
	for {
		select {
		case <-q.done:
			return
		case j := <-q.queue:
			// 呼叫端已放棄時不再送出
			if err := j.ctx.Err(); err != nil {
				j.result <- jobResult{err: err}
				continue
			}
			reply, err := q.inner.Complete(j.ctx, j.system, j.prompt)
			atomic.AddInt64(&q.processed, 1)
			j.result <- jobResult{reply: reply, err: err}
		}
	}
}

// Complete 排入隊列並等待回覆；隊列已滿時立即回傳 SERVICE_UNAVAILABLE
func (q *Queue) Complete(ctx context.Context, system, prompt string) (string, error) {
	j := &job{
		ctx:    ctx,
		system: system,
		prompt: prompt,
		result: make(chan jobResult, 1),
	}

	select {
	case <-q.done:
		return "", common.WrapError(common.ErrServiceUnavailable, "assistant queue is closed", nil)
	default:
	}

	select {
	case q.queue <- j:
		common.LogDebug("assistant request enqueued",
			zap.Int("queue_length", len(q.queue)),
			zap.Int("max_queue_size", q.maxSize),
		)
	default:
		return "", common.WrapError(common.ErrServiceUnavailable, "assistant queue is full", nil)
	}

	select {
	case r := <-j.result:
		return r.reply, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-q.done:
		return "", common.WrapError(common.ErrServiceUnavailable, "assistant queue is closed", nil)
	}
}

// Status 隊列狀態
func (q *Queue) Status() QueueStatus {
	return QueueStatus{
		QueueLength:    len(q.queue),
		ProcessedCount: int(atomic.LoadInt64(&q.processed)),
		MaxQueueSize:   q.maxSize,
		Workers:        q.workers,
	}
}

// Close 停止 worker，尚未處理的請求會收到 SERVICE_UNAVAILABLE
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
		q.wg.Wait()
	})
}

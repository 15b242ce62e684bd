// Package jobs はcronで定期実行するバックグラウンドジョブを提供します。
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout は1回のジョブ実行の上限時間です。
const runTimeout = 30 * time.Second

// ExpiredSessionDeleter は期限切れセッションを削除します。
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionCleanupJob は期限切れセッションを定期的に削除します。
type SessionCleanupJob struct {
	sessions ExpiredSessionDeleter
}

var _ cron.Job = (*SessionCleanupJob)(nil)

func NewSessionCleanupJob(sessions ExpiredSessionDeleter) *SessionCleanupJob {
	return &SessionCleanupJob{sessions: sessions}
}

// Run はcron.Jobの実装です。失敗はログに残し、次回の実行に任せます。
func (j *SessionCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	n, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		slog.Warn("session cleanup failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("expired sessions removed", "count", n)
	}
}

// NewScheduler はschedule（例: "@every 1h"）でjobを登録したスケジューラーを返します。
// 呼び出し側でStart/Stopを行います。
func NewScheduler(schedule string, job cron.Job) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddJob(schedule, job); err != nil {
		return nil, fmt.Errorf("invalid job schedule %q: %w", schedule, err)
	}
	return c, nil
}

package memorysrv

import (
	"context"
	"time"

	"github.com/hintran0208/ai-chatbot-travel-tts/pkg/logx"
)

// Forgetter deletes memories older than a retention window.
type Forgetter interface {
	Forget(ctx context.Context, retention time.Duration) (int, error)
}

// Pruner enforces memory retention in the background.
type Pruner struct {
	memories  Forgetter
	retention time.Duration
	interval  time.Duration
}

func NewPruner(memories Forgetter, retention, interval time.Duration) *Pruner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Pruner{
		memories:  memories,
		retention: retention,
		interval:  interval,
	}
}

// Enabled is false when retention is zero, i.e. memories are kept forever.
func (p *Pruner) Enabled() bool {
	return p.retention > 0
}

// Start prunes once, then every interval until ctx is done.
func (p *Pruner) Start(ctx context.Context) {
	if !p.Enabled() {
		logx.Info("Memory retention disabled; conversation memories are kept indefinitely")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logx.Info("Memory pruner stopped")
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce prunes expired memories and reports how many were removed.
func (p *Pruner) RunOnce(ctx context.Context) int {
	removed, err := p.memories.Forget(ctx, p.retention)
	if err != nil {
		logx.Errorf("Error pruning conversation memories: %v", err)
		return 0
	}
	if removed > 0 {
		logx.WithFields(logx.Fields{"removed": removed, "retention": p.retention.String()}).
			Info("Pruned expired conversation memories")
	}
	return removed
}

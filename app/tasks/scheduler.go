package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/notice-filter/app/pages"
)

// PageReloader is the part of the page cache the scheduler drives.
type PageReloader interface {
	Stale() ([]string, error)
	LoadPage(name string) (*pages.Page, error)
}

var _ PageReloader = (*pages.Cache)(nil)

// Scheduler reloads pages whose files changed on disk, so edits to the
// hosting documents show up without a restart.
type Scheduler struct {
	pageCache PageReloader
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewScheduler(pageCache PageReloader, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		pageCache: pageCache,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Scheduler) Start() {
	if s.interval <= 0 {
		slog.Info("Page reloading disabled")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.ReloadStale()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// ReloadStale reloads every changed page and returns how many succeeded.
func (s *Scheduler) ReloadStale() int {
	names, err := s.pageCache.Stale()
	if err != nil {
		slog.Error("Failed to check pages for changes", "error", err)
		return 0
	}

	reloaded := 0
	for _, name := range names {
		page, err := s.pageCache.LoadPage(name)
		if err != nil {
			slog.Warn("Failed to reload page, keeping previous version", "page", name, "error", err)
			continue
		}
		slog.Info("Page reloaded", "page", name, "items", page.Items)
		reloaded++
	}
	return reloaded
}

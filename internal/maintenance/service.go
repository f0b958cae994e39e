// Package maintenance surfaces the scheduled-downtime banner. The notice
// is polled from the backend and cached in Redis so a portal restart does
// not blank the banner between polls.
package maintenance

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/internal/gateway"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/logger"
	"github.com/campusvoice/student-portal/pkg/redis"
)

const (
	noticeKey = "maintenance:notice"
	noticeTTL = 24 * time.Hour

	// bannerWindow is how far ahead of the scheduled time the banner shows
	bannerWindow = 24 * time.Hour
)

// Backend is the slice of the gateway this service needs
type Backend interface {
	GetMaintenanceNotice(ctx context.Context) (*gateway.MaintenanceNotice, error)
}

// Banner is what the UI renders above every page
type Banner struct {
	Active        bool       `json:"active"`
	Message       string     `json:"message,omitempty"`
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
}

// Service owns the cached maintenance notice
type Service struct {
	backend Backend
	redis   *redis.Client

	mu     sync.RWMutex
	notice *gateway.MaintenanceNotice

	now func() time.Time
}

// NewService creates a maintenance service
func NewService(backend Backend, redisClient *redis.Client) *Service {
	return &Service{
		backend: backend,
		redis:   redisClient,
		now:     time.Now,
	}
}

// Refresh polls the backend for the current notice and updates the cache.
// A fetch failure keeps the previous notice; the next cycle retries.
func (s *Service) Refresh(ctx context.Context) error {
	notice, err := s.backend.GetMaintenanceNotice(ctx)
	if err != nil {
		logger.WithContext(ctx).Warn("maintenance notice refresh failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.notice = notice
	s.mu.Unlock()

	if notice == nil {
		if err := s.redis.Delete(ctx, noticeKey); err != nil {
			logger.WithContext(ctx).Warn("failed to clear cached notice", zap.Error(err))
		}
		return nil
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	if err := s.redis.SetWithExpiration(ctx, noticeKey, string(payload), noticeTTL); err != nil {
		logger.WithContext(ctx).Warn("failed to cache maintenance notice", zap.Error(err))
	}
	return nil
}

// current returns the notice, falling back to the Redis cache when memory
// is cold (fresh process, first poll not done yet).
func (s *Service) current(ctx context.Context) *gateway.MaintenanceNotice {
	s.mu.RLock()
	notice := s.notice
	s.mu.RUnlock()
	if notice != nil {
		return notice
	}

	raw, err := s.redis.GetString(ctx, noticeKey)
	if err != nil || raw == "" {
		return nil
	}

	var cached gateway.MaintenanceNotice
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil
	}

	s.mu.Lock()
	s.notice = &cached
	s.mu.Unlock()
	return &cached
}

// Banner returns the banner state for the given language. The banner is
// active from 24 hours before the scheduled time until the time passes.
func (s *Service) Banner(ctx context.Context, lang i18n.Language) Banner {
	notice := s.current(ctx)
	if notice == nil {
		return Banner{}
	}

	now := s.now()
	if now.After(notice.ScheduledTime) || notice.ScheduledTime.Sub(now) > bannerWindow {
		return Banner{}
	}

	message := notice.Message
	if message == "" {
		message = i18n.Translate("maintenance.banner", lang)
	}

	scheduled := notice.ScheduledTime
	return Banner{Active: true, Message: message, ScheduledTime: &scheduled}
}

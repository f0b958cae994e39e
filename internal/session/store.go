// Package session owns the persisted client state of a signed-in student:
// UI language, theme flag, and the backend session token. State survives
// reloads via Redis; language changes fan out to in-process subscribers so
// every reader re-renders with the new dictionary.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/logger"
	"github.com/campusvoice/student-portal/pkg/redis"
)

const (
	// DefaultTheme is used when no theme has been persisted
	DefaultTheme = "light"

	sessionTTL = 24 * time.Hour
)

// LanguageListener is notified after the user's language changes
type LanguageListener func(userID string, lang i18n.Language)

// Store persists per-user client state in Redis
type Store struct {
	redis *redis.Client

	mu        sync.RWMutex
	listeners []LanguageListener
	active    map[string]string // userID → bearer token, for background refresh
}

// NewStore creates a session store
func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redis:  redisClient,
		active: make(map[string]string),
	}
}

func languageKey(userID string) string { return fmt.Sprintf("session:%s:language", userID) }
func themeKey(userID string) string    { return fmt.Sprintf("session:%s:theme", userID) }
func tokenKey(userID string) string    { return fmt.Sprintf("session:%s:token", userID) }

// Subscribe registers a listener for language changes
func (s *Store) Subscribe(l LanguageListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notifyLanguage(userID string, lang i18n.Language) {
	s.mu.RLock()
	listeners := make([]LanguageListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(userID, lang)
	}
}

// Language returns the user's persisted language, defaulting to English
func (s *Store) Language(ctx context.Context, userID string) i18n.Language {
	val, err := s.redis.GetString(ctx, languageKey(userID))
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			logger.WithContext(ctx).Warn("failed to read language, using default",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return i18n.DefaultLang
	}

	lang := i18n.Language(val)
	if !i18n.IsSupported(lang) {
		return i18n.DefaultLang
	}
	return lang
}

// SetLanguage persists a language choice and notifies subscribers
func (s *Store) SetLanguage(ctx context.Context, userID string, lang i18n.Language) error {
	if !i18n.IsSupported(lang) {
		return fmt.Errorf("unsupported language %q", lang)
	}
	if err := s.redis.SetWithExpiration(ctx, languageKey(userID), string(lang), sessionTTL); err != nil {
		return fmt.Errorf("persist language: %w", err)
	}
	s.notifyLanguage(userID, lang)
	return nil
}

// ToggleLanguage flips en ↔ am, persists the new value, and returns it.
// The flip is atomic from the caller's point of view: the new language is
// only observable after it has been persisted.
func (s *Store) ToggleLanguage(ctx context.Context, userID string) (i18n.Language, error) {
	next := i18n.Toggle(s.Language(ctx, userID))
	if err := s.SetLanguage(ctx, userID, next); err != nil {
		return "", err
	}
	return next, nil
}

// Theme returns the user's persisted theme flag
func (s *Store) Theme(ctx context.Context, userID string) string {
	val, err := s.redis.GetString(ctx, themeKey(userID))
	if err != nil || val == "" {
		return DefaultTheme
	}
	return val
}

// SetTheme persists the theme flag
func (s *Store) SetTheme(ctx context.Context, userID, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unsupported theme %q", theme)
	}
	if err := s.redis.SetWithExpiration(ctx, themeKey(userID), theme, sessionTTL); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// Touch records an authenticated request: the token is persisted and the
// user is tracked as active so background refresh can act on their behalf.
func (s *Store) Touch(ctx context.Context, userID, token string) {
	if err := s.redis.SetWithExpiration(ctx, tokenKey(userID), token, sessionTTL); err != nil {
		logger.WithContext(ctx).Warn("failed to persist session token",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	s.mu.Lock()
	s.active[userID] = token
	s.mu.Unlock()
}

// Drop forgets a user's in-memory session (their Redis state expires on TTL)
func (s *Store) Drop(userID string) {
	s.mu.Lock()
	delete(s.active, userID)
	s.mu.Unlock()
}

// ActiveSessions returns a snapshot of active userID → token pairs
func (s *Store) ActiveSessions() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.active))
	for id, token := range s.active {
		out[id] = token
	}
	return out
}

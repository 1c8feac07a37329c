package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
	"github.com/okonst/portfolio-server/internal/secret"
)

// Settings serves the site-settings row with the SMTP password decrypted.
// Reads go through an explicit TTL cache; the update path invalidates it
// synchronously, so there is never a window where a reader can observe stale
// settings past one TTL.
type Settings struct {
	store  model.SettingsStore
	cipher *secret.Cipher
	ttl    time.Duration
	logger *logger.Logger
	now    func() time.Time

	mu        sync.Mutex
	cached    model.Settings
	hasCached bool
	expiresAt time.Time
}

func NewSettings(store model.SettingsStore, cipher *secret.Cipher, ttl time.Duration, logger *logger.Logger) *Settings {
	return &Settings{
		store:  store,
		cipher: cipher,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the current settings with the SMTP password in plaintext.
// Fails NotFound until an operator has configured the site.
func (s *Settings) Get(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	if s.hasCached && s.now().Before(s.expiresAt) {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	stored, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Settings{}, model.NotFoundError("site settings not configured")
		}
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	if stored.SMTPPassword != "" {
		plain, err := s.cipher.Decrypt(stored.SMTPPassword)
		if err != nil {
			return model.Settings{}, fmt.Errorf("decrypt smtp password: %w", err)
		}
		stored.SMTPPassword = plain
	}

	s.mu.Lock()
	s.cached = stored
	s.hasCached = true
	s.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	return stored, nil
}

// Update encrypts the SMTP password, persists the row and invalidates the
// cache before returning.
func (s *Settings) Update(ctx context.Context, in model.Settings) (model.Settings, error) {
	toStore := in
	if in.SMTPPassword != "" {
		enc, err := s.cipher.Encrypt(in.SMTPPassword)
		if err != nil {
			return model.Settings{}, fmt.Errorf("encrypt smtp password: %w", err)
		}
		toStore.SMTPPassword = enc
	}

	saved, err := s.store.Upsert(ctx, toStore)
	if err != nil {
		return model.Settings{}, fmt.Errorf("persist settings: %w", err)
	}

	s.Invalidate()
	s.logger.Info("Settings service: site settings updated")

	saved.SMTPPassword = in.SMTPPassword
	return saved, nil
}

// Invalidate drops the cached value. The next Get reloads from the store.
func (s *Settings) Invalidate() {
	s.mu.Lock()
	s.hasCached = false
	s.cached = model.Settings{}
	s.mu.Unlock()
}

package model

import (
	"context"
	"time"
)

// SettingsStore persists the single site-settings row.
type SettingsStore interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, s Settings) (Settings, error)
}

// Settings is the operator-supplied site configuration. SMTPPassword holds
// ciphertext at the store boundary; the settings service is the only place
// that sees the plaintext.
type Settings struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	SenderName   string
	UpdatedAt    time.Time
}

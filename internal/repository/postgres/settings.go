package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/okonst/portfolio-server/internal/model"
)

var _ model.SettingsStore = (*SettingsRepository)(nil)

// SettingsRepository persists the single site-settings row. The SMTP
// password column always holds ciphertext; encryption happens in the
// settings service before the value reaches this layer.
type SettingsRepository struct {
	db *Connection
}

func NewSettingsRepository(db *Connection) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (model.Settings, error) {
	const query = `
        SELECT smtp_host, smtp_port, smtp_username, smtp_password_enc, sender_email, sender_name, updated_at
        FROM site_settings WHERE id = 1
    `
	var s model.Settings
	err := r.db.querier(ctx).QueryRowContext(ctx, query).Scan(
		&s.SMTPHost, &s.SMTPPort, &s.SMTPUsername, &s.SMTPPassword,
		&s.SenderEmail, &s.SenderName, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Settings{}, model.ErrNotFound
		}
		return model.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s model.Settings) (model.Settings, error) {
	const query = `
        INSERT INTO site_settings (id, smtp_host, smtp_port, smtp_username, smtp_password_enc, sender_email, sender_name, updated_at)
        VALUES (1,$1,$2,$3,$4,$5,$6,NOW())
        ON CONFLICT (id) DO UPDATE SET
            smtp_host = EXCLUDED.smtp_host,
            smtp_port = EXCLUDED.smtp_port,
            smtp_username = EXCLUDED.smtp_username,
            smtp_password_enc = EXCLUDED.smtp_password_enc,
            sender_email = EXCLUDED.sender_email,
            sender_name = EXCLUDED.sender_name,
            updated_at = NOW()
        RETURNING smtp_host, smtp_port, smtp_username, smtp_password_enc, sender_email, sender_name, updated_at
    `
	var saved model.Settings
	err := r.db.querier(ctx).QueryRowContext(ctx, query,
		s.SMTPHost, s.SMTPPort, s.SMTPUsername, s.SMTPPassword, s.SenderEmail, s.SenderName,
	).Scan(
		&saved.SMTPHost, &saved.SMTPPort, &saved.SMTPUsername, &saved.SMTPPassword,
		&saved.SenderEmail, &saved.SenderName, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return saved, nil
}

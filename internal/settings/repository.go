package settings

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Get(ctx context.Context) (*StudioSettings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*StudioSettings, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const settingsColumns = `id, studio_name, contact_email, reminder_lead_hours, cancellation_notice_hours, updated_at`

// Get returns the singleton row, inserting the defaults on first access.
func (r *repository) Get(ctx context.Context) (*StudioSettings, error) {
	query := `
		INSERT INTO studio_settings (id)
		VALUES (1)
		ON CONFLICT (id) DO UPDATE SET id = studio_settings.id
		RETURNING ` + settingsColumns

	var s StudioSettings
	err := r.db.GetContext(ctx, &s, query)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Update(ctx context.Context, req UpdateSettingsRequest) (*StudioSettings, error) {
	if _, err := r.Get(ctx); err != nil {
		return nil, err
	}

	query := `
		UPDATE studio_settings
		SET studio_name = $1,
		    contact_email = $2,
		    reminder_lead_hours = $3,
		    cancellation_notice_hours = $4,
		    updated_at = now()
		WHERE id = 1
		RETURNING ` + settingsColumns

	var s StudioSettings
	err := r.db.GetContext(ctx, &s, query,
		req.StudioName, req.ContactEmail, req.ReminderLeadHours, req.CancellationNoticeHours)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

package settings

import "time"

// StudioSettings is a singleton row, created lazily with defaults. Callers
// fetch it per operation and pass it down explicitly rather than caching it.
type StudioSettings struct {
	ID                      int       `db:"id" json:"id"`
	StudioName              string    `db:"studio_name" json:"studio_name"`
	ContactEmail            string    `db:"contact_email" json:"contact_email"`
	ReminderLeadHours       int       `db:"reminder_lead_hours" json:"reminder_lead_hours"`
	CancellationNoticeHours int       `db:"cancellation_notice_hours" json:"cancellation_notice_hours"`
	UpdatedAt               time.Time `db:"updated_at" json:"updated_at"`
}

type UpdateSettingsRequest struct {
	StudioName              string `json:"studio_name" binding:"required"`
	ContactEmail            string `json:"contact_email" binding:"required,email"`
	ReminderLeadHours       *int   `json:"reminder_lead_hours" binding:"required,min=0"`
	CancellationNoticeHours *int   `json:"cancellation_notice_hours" binding:"required,min=0"`
}

package services

import (
	"time"

	"github.com/bankgold/bankgold/internal/core/domain"
)

// SettingsSvc holds the runtime system toggles and the working-hours gate.
type SettingsSvc interface {
	Snapshot() domain.SystemSettings

	SetBotEnabled(on bool)
	SetCreateEnabled(on bool)
	SetTransfersEnabled(on bool)
	SetMaintenanceMode(on bool)
	SetWorkingHoursEnabled(on bool)

	// Gate evaluates the bot/maintenance/working-hours gates for a caller.
	// Admins bypass all gates. When ok is false, msg is the reply to send.
	Gate(now time.Time, isAdmin bool) (ok bool, msg string)

	// WithinWorkingHours reports whether now falls inside the service window,
	// regardless of whether the window gate is enabled.
	WithinWorkingHours(now time.Time) bool
}

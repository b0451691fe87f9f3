package services

import (
	"sync"
	"time"

	"github.com/bankgold/bankgold/internal/core/domain"
	portssvc "github.com/bankgold/bankgold/internal/core/ports/services"
	"github.com/bankgold/bankgold/internal/platform/config"
)

const (
	botDisabledMessage = "⏸️ البوت متوقف حاليًا. الرجاء المحاولة لاحقاً."
	maintenanceMessage = "🛠️ النظام تحت الصيانة. الرجاء المحاولة لاحقاً."
	offHoursMessage    = "⏰ البوت متوقف خارج أوقات العمل. أوقات العمل: 8:00 صباحاً - 10:00 مساءً"
)

// settingsService holds the runtime toggles in memory. A restart resets them
// to the configured defaults.
type settingsService struct {
	mu       sync.RWMutex
	settings domain.SystemSettings
}

// NewSettingsService seeds the runtime toggles from configuration.
func NewSettingsService(cfg *config.Config) portssvc.SettingsSvc {
	return &settingsService{
		settings: domain.SystemSettings{
			BotEnabled:       cfg.BotEnabled,
			CreateEnabled:    true,
			TransfersEnabled: true,
			MaintenanceMode:  cfg.MaintenanceMode,
			WorkingHours: domain.WorkingHours{
				Enabled:   cfg.WorkingHoursOn,
				StartTime: cfg.WorkingHoursFrom,
				EndTime:   cfg.WorkingHoursTo,
				Timezone:  cfg.Timezone,
			},
		},
	}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) Snapshot() domain.SystemSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *settingsService) SetBotEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.BotEnabled = on
}

func (s *settingsService) SetCreateEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.CreateEnabled = on
}

func (s *settingsService) SetTransfersEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.TransfersEnabled = on
}

func (s *settingsService) SetMaintenanceMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.MaintenanceMode = on
}

func (s *settingsService) SetWorkingHoursEnabled(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.WorkingHours.Enabled = on
}

// Gate evaluates the bot/maintenance/working-hours gates for a caller.
// Admins bypass every gate so the system stays operable while closed.
func (s *settingsService) Gate(now time.Time, isAdmin bool) (bool, string) {
	if isAdmin {
		return true, ""
	}

	snap := s.Snapshot()

	if !snap.BotEnabled {
		if snap.MaintenanceMode {
			return false, maintenanceMessage
		}
		return false, botDisabledMessage
	}

	if snap.WorkingHours.Enabled && !withinWorkingHours(now, snap.WorkingHours) {
		return false, offHoursMessage
	}

	if snap.MaintenanceMode {
		return false, maintenanceMessage
	}

	return true, ""
}

// WithinWorkingHours reports whether now falls inside the service window.
func (s *settingsService) WithinWorkingHours(now time.Time) bool {
	return withinWorkingHours(now, s.Snapshot().WorkingHours)
}

// withinWorkingHours checks the wall clock against the service window in its
// timezone. Malformed bounds fail open.
func withinWorkingHours(now time.Time, wh domain.WorkingHours) bool {
	loc, err := time.LoadLocation(wh.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	start, errStart := time.Parse("15:04", wh.StartTime)
	end, errEnd := time.Parse("15:04", wh.EndTime)
	if errStart != nil || errEnd != nil {
		return true
	}

	minutes := local.Hour()*60 + local.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()

	if startMin <= endMin {
		return minutes >= startMin && minutes < endMin
	}
	// Window crosses midnight.
	return minutes >= startMin || minutes < endMin
}

package services_test

import (
	"testing"
	"time"

	"github.com/bankgold/bankgold/internal/core/services"
	"github.com/bankgold/bankgold/internal/platform/config"
	"github.com/stretchr/testify/assert"
)

func settingsConfig() *config.Config {
	return &config.Config{
		BotEnabled:       true,
		MaintenanceMode:  false,
		WorkingHoursOn:   false,
		WorkingHoursFrom: "08:00",
		WorkingHoursTo:   "22:00",
		Timezone:         "UTC",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 29, hour, minute, 0, 0, time.UTC)
}

func TestGate_OpenByDefault(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())

	ok, msg := svc.Gate(at(12, 0), false)
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestGate_AdminBypassesEveryGate(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())
	svc.SetBotEnabled(false)
	svc.SetMaintenanceMode(true)
	svc.SetWorkingHoursEnabled(true)

	ok, msg := svc.Gate(at(3, 0), true)
	assert.True(t, ok)
	assert.Empty(t, msg)
}

func TestGate_BotDisabled(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())
	svc.SetBotEnabled(false)

	ok, msg := svc.Gate(at(12, 0), false)
	assert.False(t, ok)
	assert.Equal(t, "⏸️ البوت متوقف حاليًا. الرجاء المحاولة لاحقاً.", msg)
}

func TestGate_MaintenanceWinsOverDisabled(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())
	svc.SetBotEnabled(false)
	svc.SetMaintenanceMode(true)

	ok, msg := svc.Gate(at(12, 0), false)
	assert.False(t, ok)
	assert.Equal(t, "🛠️ النظام تحت الصيانة. الرجاء المحاولة لاحقاً.", msg)
}

func TestGate_Maintenance(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())
	svc.SetMaintenanceMode(true)

	ok, msg := svc.Gate(at(12, 0), false)
	assert.False(t, ok)
	assert.Equal(t, "🛠️ النظام تحت الصيانة. الرجاء المحاولة لاحقاً.", msg)
}

func TestGate_OutsideWorkingHours(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())
	svc.SetWorkingHoursEnabled(true)

	ok, msg := svc.Gate(at(23, 30), false)
	assert.False(t, ok)
	assert.Contains(t, msg, "خارج أوقات العمل")

	ok, _ = svc.Gate(at(12, 0), false)
	assert.True(t, ok)
}

func TestWithinWorkingHours(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())

	assert.True(t, svc.WithinWorkingHours(at(8, 0)))
	assert.True(t, svc.WithinWorkingHours(at(21, 59)))
	assert.False(t, svc.WithinWorkingHours(at(22, 0)))
	assert.False(t, svc.WithinWorkingHours(at(7, 59)))
	assert.False(t, svc.WithinWorkingHours(at(3, 0)))
}

func TestWithinWorkingHours_WindowCrossesMidnight(t *testing.T) {
	cfg := settingsConfig()
	cfg.WorkingHoursFrom = "22:00"
	cfg.WorkingHoursTo = "02:00"
	svc := services.NewSettingsService(cfg)

	assert.True(t, svc.WithinWorkingHours(at(23, 0)))
	assert.True(t, svc.WithinWorkingHours(at(1, 30)))
	assert.False(t, svc.WithinWorkingHours(at(2, 0)))
	assert.False(t, svc.WithinWorkingHours(at(12, 0)))
}

func TestWithinWorkingHours_MalformedBoundsFailOpen(t *testing.T) {
	cfg := settingsConfig()
	cfg.WorkingHoursFrom = "not-a-time"
	svc := services.NewSettingsService(cfg)

	assert.True(t, svc.WithinWorkingHours(at(3, 0)))
}

func TestSettingsToggles(t *testing.T) {
	svc := services.NewSettingsService(settingsConfig())

	svc.SetCreateEnabled(false)
	svc.SetTransfersEnabled(false)
	snap := svc.Snapshot()
	assert.False(t, snap.CreateEnabled)
	assert.False(t, snap.TransfersEnabled)
	assert.True(t, snap.BotEnabled)

	svc.SetCreateEnabled(true)
	assert.True(t, svc.Snapshot().CreateEnabled)
}

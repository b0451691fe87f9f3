package domain

// WorkingHours is the optional service-window gate applied to non-admin callers.
type WorkingHours struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"` // "08:00", wall clock in Timezone
	EndTime   string `json:"endTime"`   // "22:00"
	Timezone  string `json:"timezone"`  // IANA name, e.g. "Asia/Riyadh"
}

// SystemSettings are the runtime toggles mutable through admin commands.
// They live in memory for the process lifetime; restart resets them to the
// configured defaults.
type SystemSettings struct {
	BotEnabled       bool         `json:"botEnabled"`
	CreateEnabled    bool         `json:"createEnabled"`
	TransfersEnabled bool         `json:"transfersEnabled"`
	MaintenanceMode  bool         `json:"maintenanceMode"`
	WorkingHours     WorkingHours `json:"workingHours"`
}

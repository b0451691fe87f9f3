package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Webhook / Send API credentials
	VerifyToken     string
	PageAccessToken string

	// SuperAdminID is the chat identity with unconditional full access.
	SuperAdminID string

	// Ledger defaults
	InitialBalance         decimal.Decimal
	Currency               string
	ArchiveDefaultPassword string

	// Default runtime toggles, mutable later through admin commands
	BotEnabled       bool
	MaintenanceMode  bool
	WorkingHoursOn   bool
	WorkingHoursFrom string
	WorkingHoursTo   string
	Timezone         string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("VERIFY_TOKEN", "")
	viper.SetDefault("PAGE_ACCESS_TOKEN", "")
	viper.SetDefault("ADMIN_USER_ID", "")
	viper.SetDefault("INITIAL_BALANCE", "15")
	viper.SetDefault("CURRENCY", "G")
	viper.SetDefault("ARCHIVE_DEFAULT_PASSWORD", "123456")
	viper.SetDefault("BOT_ENABLED", true)
	viper.SetDefault("MAINTENANCE_MODE", false)
	viper.SetDefault("WORKING_HOURS_ENABLED", false)
	viper.SetDefault("WORKING_HOURS_START", "08:00")
	viper.SetDefault("WORKING_HOURS_END", "22:00")
	viper.SetDefault("TIMEZONE", "Asia/Riyadh")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.VerifyToken = viper.GetString("VERIFY_TOKEN")
	if cfg.VerifyToken == "" {
		log.Println("Warning: VERIFY_TOKEN not set. Webhook verification will fail.")
	}
	cfg.PageAccessToken = viper.GetString("PAGE_ACCESS_TOKEN")
	if cfg.PageAccessToken == "" {
		log.Println("Warning: PAGE_ACCESS_TOKEN not set. Outbound replies will fail.")
	}

	cfg.SuperAdminID = viper.GetString("ADMIN_USER_ID")
	if cfg.SuperAdminID == "" {
		log.Println("Warning: ADMIN_USER_ID not set. Admin commands are unreachable.")
	}

	initialBalanceStr := viper.GetString("INITIAL_BALANCE")
	initialBalance, err := decimal.NewFromString(initialBalanceStr)
	if err != nil {
		initialBalance = decimal.NewFromInt(15)
		log.Printf("Warning: Invalid value for INITIAL_BALANCE ('%s'). Defaulting to %s.\n", initialBalanceStr, initialBalance.String())
	}
	cfg.InitialBalance = initialBalance

	cfg.Currency = viper.GetString("CURRENCY")
	cfg.ArchiveDefaultPassword = viper.GetString("ARCHIVE_DEFAULT_PASSWORD")

	cfg.BotEnabled = viper.GetBool("BOT_ENABLED")
	cfg.MaintenanceMode = viper.GetBool("MAINTENANCE_MODE")
	cfg.WorkingHoursOn = viper.GetBool("WORKING_HOURS_ENABLED")
	cfg.WorkingHoursFrom = viper.GetString("WORKING_HOURS_START")
	cfg.WorkingHoursTo = viper.GetString("WORKING_HOURS_END")
	cfg.Timezone = viper.GetString("TIMEZONE")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

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

	// APIToken is the shared bearer token of the game-server shim.
	APIToken string

	// GovernmentAccountNumber is the treasury account receiving taxes,
	// bank creation costs, and teardown sweeps.
	GovernmentAccountNumber string
	// BankCreationCost is charged from a founder's wallet.
	BankCreationCost decimal.Decimal
	// TaxPercent is the government cut on paid invoices.
	TaxPercent decimal.Decimal
	// InitialMoney is the pocket money of a freshly synced player.
	InitialMoney decimal.Decimal
	// MaxBanksPerOwner caps how many banks one player may found.
	MaxBanksPerOwner int

	// SchedulerCron is the cron expression of the daily invoice driver.
	SchedulerCron string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("GOVERNMENT_ACCOUNT", "")
	viper.SetDefault("BANK_CREATION_COST", "5000")
	viper.SetDefault("TAX_PERCENT", "5")
	viper.SetDefault("INITIAL_MONEY", "1000")
	viper.SetDefault("MAX_BANKS_PER_OWNER", 1)
	viper.SetDefault("SCHEDULER_CRON", "5 0 * * *")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.APIToken = viper.GetString("API_TOKEN")
	if cfg.APIToken == "" {
		log.Println("Warning: API_TOKEN environment variable not set. All authenticated routes will reject.")
	}

	cfg.GovernmentAccountNumber = viper.GetString("GOVERNMENT_ACCOUNT")
	if cfg.GovernmentAccountNumber == "" {
		log.Println("Warning: GOVERNMENT_ACCOUNT not set. Bank creation, deletion, and invoice payment will fail.")
	}

	var err error
	if cfg.BankCreationCost, err = parseDecimal("BANK_CREATION_COST"); err != nil {
		return nil, err
	}
	if cfg.TaxPercent, err = parseDecimal("TAX_PERCENT"); err != nil {
		return nil, err
	}
	if cfg.InitialMoney, err = parseDecimal("INITIAL_MONEY"); err != nil {
		return nil, err
	}

	cfg.MaxBanksPerOwner = viper.GetInt("MAX_BANKS_PER_OWNER")
	cfg.SchedulerCron = viper.GetString("SCHEDULER_CRON")

	return cfg, nil
}

func parseDecimal(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

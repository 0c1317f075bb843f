package config

import (
	"time"

	"github.com/sortetech/recarga-sorte-backend/internal/drawcal"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	MongoDB      MongoDBConfig
	JWT          JWTConfig
	DrawCalendar DrawCalendarConfig
	LogLevel     string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// DrawCalendarConfig holds the draw calendar tables. Holiday and early-cutoff
// entries are "MM-DD" strings so the sets can be updated yearly through
// configuration alone.
type DrawCalendarConfig struct {
	NoDrawWeekdays    []int    // time.Weekday values; default Sunday
	Holidays          []string // default Dec 25, Jan 1
	EarlyCutoffDays   []string // default Dec 24, Dec 31
	RegularCutoffHour int
	EarlyCutoffHour   int
	ProbeLimit        int
}

// ToCalendarConfig converts the viper-shaped section into a drawcal.Config
func (c DrawCalendarConfig) ToCalendarConfig() drawcal.Config {
	weekdays := make([]time.Weekday, 0, len(c.NoDrawWeekdays))
	for _, wd := range c.NoDrawWeekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}
	return drawcal.Config{
		NoDrawWeekdays:  weekdays,
		Holidays:        c.Holidays,
		EarlyCutoffDays: c.EarlyCutoffDays,
		RegularCutoff:   drawcal.TimeOfDay{Hour: c.RegularCutoffHour},
		EarlyCutoff:     drawcal.TimeOfDay{Hour: c.EarlyCutoffHour},
		ProbeLimit:      c.ProbeLimit,
	}
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "recarga-sorte")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("DrawCalendar.NoDrawWeekdays", []int{int(time.Sunday)})
	viper.SetDefault("DrawCalendar.Holidays", []string{"12-25", "01-01"})
	viper.SetDefault("DrawCalendar.EarlyCutoffDays", []string{"12-24", "12-31"})
	viper.SetDefault("DrawCalendar.RegularCutoffHour", 20)
	viper.SetDefault("DrawCalendar.EarlyCutoffHour", 16)
	viper.SetDefault("DrawCalendar.ProbeLimit", drawcal.DefaultProbeLimit)
}

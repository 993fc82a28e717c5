package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/medic/supportbot/internal/engine"
	"github.com/medic/supportbot/internal/hours"
	"github.com/medic/supportbot/internal/intent"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT" validate:"required,numeric"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	AdminKey       string        `mapstructure:"ADMIN_KEY"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT" validate:"gt=0"`

	ProfileStore  string        `mapstructure:"PROFILE_STORE" validate:"oneof=memory redis postgres"`
	ProfileTTL    time.Duration `mapstructure:"PROFILE_TTL" validate:"gte=0"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL" validate:"required_if=ProfileStore postgres"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR" validate:"required_if=ProfileStore redis"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB" validate:"gte=0"`

	LookupURL     string        `mapstructure:"LOOKUP_URL" validate:"omitempty,url"`
	LookupTimeout time.Duration `mapstructure:"LOOKUP_TIMEOUT" validate:"gt=0"`

	HoursStart    int    `mapstructure:"HOURS_START" validate:"gte=0,lte=23"`
	HoursEnd      int    `mapstructure:"HOURS_END" validate:"gte=1,lte=24,gtfield=HoursStart"`
	HoursTimezone string `mapstructure:"HOURS_TIMEZONE" validate:"required"`
	Holidays      string `mapstructure:"HOLIDAYS"`

	ComplaintsPhone    string `mapstructure:"COMPLAINTS_PHONE"`
	ComplaintsWhatsApp string `mapstructure:"COMPLAINTS_WHATSAPP" validate:"omitempty,numeric"`
	CommercialPhone    string `mapstructure:"COMMERCIAL_PHONE"`
	CommercialWhatsApp string `mapstructure:"COMMERCIAL_WHATSAPP" validate:"omitempty,numeric"`
	EmergencyPhone     string `mapstructure:"EMERGENCY_PHONE"`
	EmergencyWhatsApp  string `mapstructure:"EMERGENCY_WHATSAPP" validate:"omitempty,numeric"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=0"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ADMIN_KEY", "")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("PROFILE_STORE", "memory")
	v.SetDefault("PROFILE_TTL", "720h")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOOKUP_URL", "")
	v.SetDefault("LOOKUP_TIMEOUT", "15s")
	v.SetDefault("HOURS_START", 9)
	v.SetDefault("HOURS_END", 18)
	v.SetDefault("HOURS_TIMEZONE", "America/Argentina/Buenos_Aires")
	v.SetDefault("HOLIDAYS", "2025-10-13,2025-11-17")
	v.SetDefault("COMPLAINTS_PHONE", "+54 11 2031-8064")
	v.SetDefault("COMPLAINTS_WHATSAPP", "5491120318064")
	v.SetDefault("COMMERCIAL_PHONE", "+54 11 3636-3342")
	v.SetDefault("COMMERCIAL_WHATSAPP", "5491136363342")
	v.SetDefault("EMERGENCY_PHONE", "+54 11 7078-6200")
	v.SetDefault("EMERGENCY_WHATSAPP", "5491170786200")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// HolidayList splits HOLIDAYS on commas, dropping blanks.
func (c Config) HolidayList() []string {
	var out []string
	for _, d := range strings.Split(c.Holidays, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func (c Config) Hours() (hours.Config, error) {
	return hours.New(c.HoursStart, c.HoursEnd, c.HoursTimezone, c.HolidayList())
}

func (c Config) Engine() (engine.Config, error) {
	h, err := c.Hours()
	if err != nil {
		return engine.Config{}, err
	}
	channels := map[intent.Intent]engine.Channel{}
	add := func(in intent.Intent, phone, wa string) {
		if phone != "" || wa != "" {
			channels[in] = engine.Channel{Phone: phone, WhatsApp: wa}
		}
	}
	add(intent.Complaint, c.ComplaintsPhone, c.ComplaintsWhatsApp)
	add(intent.Commercial, c.CommercialPhone, c.CommercialWhatsApp)
	add(intent.Emergency, c.EmergencyPhone, c.EmergencyWhatsApp)
	return engine.Config{Hours: h, Channels: channels}, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	TransportGoTelegram = "gotelegram"
	TransportTelebot    = "telebot"

	RunModePolling = "polling"
	RunModeWebhook = "webhook"
)

// GoogleCredentials is the OAuth client plus a long-lived refresh token.
type GoogleCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURI  string `json:"redirect_uri"`
	RefreshToken string `json:"refresh_token"`
}

type Config struct {
	TelegramToken   string `yaml:"telegram_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	DBDSN           string `yaml:"db_dsn" envconfig:"DB_DSN"`
	Storage         string `yaml:"storage" envconfig:"STORAGE"`
	Environment     string `yaml:"env" envconfig:"ENV"`
	AdminChatID     int64  `yaml:"admin_chat_id" envconfig:"ADMIN_CHAT_ID"`
	AuthorizedUsers string `yaml:"authorized_users" envconfig:"AUTHORIZED_USERS"`
	GoogleRaw       string `yaml:"google_credentials" envconfig:"GOOGLE_CREDENTIALS"`
	CalendarID      string `yaml:"calendar_id" envconfig:"CALENDAR_ID"`
	Timezone        string `yaml:"timezone" envconfig:"TIMEZONE"`
	BackofficeURL   string `yaml:"backoffice_url" envconfig:"BACKOFFICE_URL"`
	Transport       string `yaml:"transport" envconfig:"TRANSPORT"`
	RunMode         string `yaml:"run_mode" envconfig:"RUN_MODE"`
	WebhookURL      string `yaml:"webhook_url" envconfig:"WEBHOOK_URL"`
	HTTPAddr        string `yaml:"http_addr" envconfig:"HTTP_ADDR"`
	ServiceName     string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	LogLevel        string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Derived values, filled by Load.
	Authorized []int64            `yaml:"-" ignored:"true"`
	Google     *GoogleCredentials `yaml:"-" ignored:"true"`
	Location   *time.Location     `yaml:"-" ignored:"true"`
}

// Load reads .env, an optional YAML file named by CONFIG_FILE and then the
// environment, in increasing priority.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Storage == "" {
		c.Storage = StoragePostgres
	}
	if c.CalendarID == "" {
		c.CalendarID = "primary"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Maceio"
	}
	if c.BackofficeURL == "" {
		c.BackofficeURL = "https://backoffice.recrearnolar.com.br"
	}
	c.BackofficeURL = strings.TrimRight(c.BackofficeURL, "/")
	if c.Transport == "" {
		c.Transport = TransportGoTelegram
	}
	if c.RunMode == "" {
		c.RunMode = RunModePolling
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.ServiceName == "" {
		c.ServiceName = "recrear-bot"
	}

	switch c.Storage {
	case StoragePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when STORAGE=%s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}

	switch c.Transport {
	case TransportGoTelegram, TransportTelebot:
	default:
		return fmt.Errorf("unknown TRANSPORT %q", c.Transport)
	}

	switch c.RunMode {
	case RunModePolling:
	case RunModeWebhook:
		if c.WebhookURL == "" {
			return fmt.Errorf("WEBHOOK_URL is required when RUN_MODE=%s", RunModeWebhook)
		}
	default:
		return fmt.Errorf("unknown RUN_MODE %q", c.RunMode)
	}
	if c.Transport == TransportTelebot && c.RunMode == RunModeWebhook {
		return fmt.Errorf("RUN_MODE=%s is not supported with TRANSPORT=%s", RunModeWebhook, TransportTelebot)
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	c.Location = loc

	users, err := ParseAuthorizedUsers(c.AuthorizedUsers)
	if err != nil {
		return err
	}
	c.Authorized = users

	if c.GoogleRaw != "" {
		creds, err := ParseGoogleCredentials(c.GoogleRaw)
		if err != nil {
			return err
		}
		c.Google = creds
	}

	return nil
}

// RequireBot checks the values only the running bot needs.
func (c *Config) RequireBot() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required but not set")
	}
	if c.AdminChatID == 0 {
		return fmt.Errorf("ADMIN_CHAT_ID is required but not set")
	}
	return nil
}

// ParseAuthorizedUsers parses a comma separated list of Telegram user ids.
func ParseAuthorizedUsers(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTHORIZED_USERS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParseGoogleCredentials decodes the GOOGLE_CREDENTIALS JSON document.
func ParseGoogleCredentials(raw string) (*GoogleCredentials, error) {
	var creds GoogleCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("parse GOOGLE_CREDENTIALS: %w", err)
	}
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS needs client_id and client_secret")
	}
	return &creds, nil
}

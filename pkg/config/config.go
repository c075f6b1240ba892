package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	AuthDB       AuthDBConfig
	Auth         AuthConfig
	Mail         MailConfig
	Uploads      UploadsConfig
	Web          WebConfig
	TLS          TLSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"SPARETRACK_APP_ENV" default:"dev"`
	Host     string `envconfig:"SPARETRACK_APP_HOST" default:"0.0.0.0"`
	Port     string `envconfig:"SPARETRACK_APP_PORT" default:"40443"`
	LogLevel string `envconfig:"SPARETRACK_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig points at the equipment database.
type DBConfig struct {
	DSN    string `envconfig:"SPARETRACK_DB_DSN"`
	Driver string `envconfig:"SPARETRACK_DB_DRIVER" default:"sqlserver"`

	MaxOpenConns    int           `envconfig:"SPARETRACK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SPARETRACK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SPARETRACK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPARETRACK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// AuthDBConfig points at the legacy database holding Login and EMP.
type AuthDBConfig struct {
	DSN    string `envconfig:"SPARETRACK_AUTHDB_DSN"`
	Driver string `envconfig:"SPARETRACK_AUTHDB_DRIVER" default:"sqlserver"`

	MaxOpenConns    int           `envconfig:"SPARETRACK_AUTHDB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SPARETRACK_AUTHDB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SPARETRACK_AUTHDB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SPARETRACK_AUTHDB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// Pool converts the auth settings into the shape pkg/db consumes.
func (a AuthDBConfig) Pool() DBConfig {
	return DBConfig{
		DSN:             a.DSN,
		Driver:          a.Driver,
		MaxOpenConns:    a.MaxOpenConns,
		MaxIdleConns:    a.MaxIdleConns,
		ConnMaxLifetime: a.ConnMaxLifetime,
		ConnMaxIdleTime: a.ConnMaxIdleTime,
	}
}

type AuthConfig struct {
	EmailDomain string        `envconfig:"SPARETRACK_AUTH_EMAIL_DOMAIN" default:"premierenergies.com"`
	OTPTTL      time.Duration `envconfig:"SPARETRACK_AUTH_OTP_TTL" default:"5m"`
}

type MailConfig struct {
	SendgridAPIKey string `envconfig:"SPARETRACK_SENDGRID_API_KEY"`
	SenderEmail    string `envconfig:"SPARETRACK_MAIL_SENDER" default:"spot@premierenergies.com"`
	SenderName     string `envconfig:"SPARETRACK_MAIL_SENDER_NAME" default:"SpareTrack"`
}

type UploadsConfig struct {
	Dir          string `envconfig:"SPARETRACK_UPLOADS_DIR" default:"uploads"`
	MaxSizeBytes int64  `envconfig:"SPARETRACK_UPLOADS_MAX_SIZE_BYTES" default:"52428800"`
}

type WebConfig struct {
	DistDir string `envconfig:"SPARETRACK_WEB_DIST_DIR" default:"web/dist"`
}

type TLSConfig struct {
	CertFile string `envconfig:"SPARETRACK_TLS_CERT_FILE"`
	KeyFile  string `envconfig:"SPARETRACK_TLS_KEY_FILE"`
}

func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SPARETRACK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SPARETRACK_AUTO_MIGRATE" default:"false"`
}

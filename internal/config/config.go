package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL          string `yaml:"ttl"`
	Length       int    `yaml:"length"`
	ResendWindow string `yaml:"resend_window"`
}

type RegistrationConfig struct {
	// BlockApprovedDuplicates switches the reconciler from forking a new
	// pending row on an approved match to rejecting the submission.
	BlockApprovedDuplicates bool `yaml:"block_approved_duplicates"`
}

type LoginConfig struct {
	SessionTTL string `yaml:"session_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SendgridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App          AppConfig          `yaml:"app"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	OTP          OTPConfig          `yaml:"otp"`
	Registration RegistrationConfig `yaml:"registration"`
	Login        LoginConfig        `yaml:"login"`
	Twilio       TwilioConfig       `yaml:"twilio"`
	Sendgrid     SendgridConfig     `yaml:"sendgrid"`
	Casbin       CasbinConfig       `yaml:"casbin"`
}

type Config struct {
	Port        string
	GinMode     string
	Environment string

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	OTPTTL          time.Duration
	OTPLength       int
	OTPResendWindow time.Duration

	BlockApprovedDuplicates bool
	LoginSessionTTL         time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string

	SendgridKey       string
	SendgridFromEmail string
	SendgridFromName  string

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml, applying environment overrides for
// credentials so secrets stay out of the file.
func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(configFile.OTP.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	resWnd, err := time.ParseDuration(configFile.OTP.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend window: %w", err)
	}

	loginTTL, err := time.ParseDuration(configFile.Login.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid login session TTL: %w", err)
	}

	return &Config{
		Port:        fmt.Sprintf("%d", configFile.App.Port),
		GinMode:     configFile.App.GinMode,
		Environment: configFile.App.Environment,

		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:  env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:  configFile.JWT.Issuer,
		AccessTTL:  accTTL,
		RefreshTTL: refTTL,

		OTPTTL:          otpTTL,
		OTPLength:       configFile.OTP.Length,
		OTPResendWindow: resWnd,

		BlockApprovedDuplicates: configFile.Registration.BlockApprovedDuplicates,
		LoginSessionTTL:         loginTTL,

		TwilioSID:   env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken: env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:  env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),

		SendgridKey:       env("SENDGRID_API_KEY", configFile.Sendgrid.APIKey),
		SendgridFromEmail: env("SENDGRID_FROM_EMAIL", configFile.Sendgrid.FromEmail),
		SendgridFromName:  configFile.Sendgrid.FromName,

		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigPath              = "config.yaml"
	DefaultAccessTokenExpireMinute = 30
	DefaultJWTAlgorithm            = "HS256"
	DefaultJWTIssuer               = "RECIPE-API"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBSSLMode  string `yaml:"DB_SSLMODE"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// JWT and password hashing
	JWTSecret                string `yaml:"JWT_SECRET"`
	JWTAlgorithm             string `yaml:"JWT_ALGORITHM"`
	JWTIssuer                string `yaml:"JWT_ISSUER"`
	AccessTokenExpireMinutes int    `yaml:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	BcryptCost               int    `yaml:"BCRYPT_COST"`

	// HTTP server
	AppPort      string `yaml:"APP_PORT"`
	LogFile      string `yaml:"LOG_FILE"`
	LogLevel     string `yaml:"LOG_LEVEL"`
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
	AWSEndpoint  string `yaml:"AWS_S3_ENDPOINT"`

	// Kafka domain events
	KafkaBrokers string `yaml:"KAFKA_BROKERS"`
	KafkaTopic   string `yaml:"KAFKA_TOPIC"`
}

// LoadConfig reads the YAML file at path and then applies environment
// overrides. A missing file is not an error: defaults and the environment are
// used instead.
func LoadConfig(path string) (Config, error) {
	var config Config

	file, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(file, &config); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	config.applyDefaults()
	return config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"DB_SSLMODE":         &c.DBSSLMode,
		"DB_TIMEZONE":        &c.DBTimeZone,
		"JWT_SECRET":         &c.JWTSecret,
		"JWT_ALGORITHM":      &c.JWTAlgorithm,
		"JWT_ISSUER":         &c.JWTIssuer,
		"APP_PORT":           &c.AppPort,
		"LOG_FILE":           &c.LogFile,
		"LOG_LEVEL":          &c.LogLevel,
		"APP_URL":            &c.AppURL,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"AWS_S3_ENDPOINT":    &c.AWSEndpoint,
		"KAFKA_BROKERS":      &c.KafkaBrokers,
		"KAFKA_TOPIC":        &c.KafkaTopic,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"ACCESS_TOKEN_EXPIRE_MINUTES": &c.AccessTokenExpireMinutes,
		"BCRYPT_COST":                 &c.BcryptCost,
		"RATE_LIMIT_MAX":              &c.RateLimitMax,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		*dst = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.JWTAlgorithm == "" {
		c.JWTAlgorithm = DefaultJWTAlgorithm
	}
	if c.JWTIssuer == "" {
		c.JWTIssuer = DefaultJWTIssuer
	}
	if c.AccessTokenExpireMinutes == 0 {
		c.AccessTokenExpireMinutes = DefaultAccessTokenExpireMinute
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBSSLMode == "" {
		c.DBSSLMode = "disable"
	}
	if c.DBTimeZone == "" {
		c.DBTimeZone = "UTC"
	}
	if c.LogFile == "" {
		c.LogFile = "./logs/app.log"
	}
	if c.KafkaTopic == "" {
		c.KafkaTopic = "recipe-events"
	}
}

// Validate rejects configurations the token service or the hasher could not
// work with.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM %q is not supported, use HS256, HS384 or HS512", c.JWTAlgorithm)
	}
	if c.AccessTokenExpireMinutes < 1 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

func (c Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c Config) KafkaBrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) StorageEnabled() bool {
	return c.AWSS3Bucket != ""
}

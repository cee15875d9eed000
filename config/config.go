package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type (
	APP struct {
		Name      string
		Host      string
		Port      string
		Env       string
		JWTSecret string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Drive struct {
		ClientID       string
		ClientSecret   string
		RedirectURI    string
		RootFolderName string
	}
	Secrets struct {
		EncryptionKey string
	}
	Attachments struct {
		MaxPerRecord   int
		MaxUploadBytes int64
	}
	Jobs struct {
		PurgeInterval      time.Duration
		OrphanScanInterval time.Duration
		BulkConcurrency    int
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App         APP
		DB          DB
		Drive       Drive
		Secrets     Secrets
		Attachments Attachments
		Jobs        Jobs
		MQ          MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func Load() Config {
	app := APP{
		Name:      getEnv("SERVICE_NAME", ""),
		Host:      getEnv("SERVICE_HOST", ""),
		Port:      getEnv("SERVICE_PORT", ""),
		Env:       getEnv("SERVICE_ENV", ""),
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	drive := Drive{
		ClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURI:    getEnv("GOOGLE_REDIRECT_URI", ""),
		RootFolderName: getEnv("DRIVE_ROOT_FOLDER_NAME", "FinanceTracker"),
	}
	secrets := Secrets{
		EncryptionKey: getEnv("SECRETS_ENCRYPTION_KEY", ""),
	}
	attachments := Attachments{
		MaxPerRecord:   getEnvInt("ATTACHMENT_MAX_PER_RECORD", 5),
		MaxUploadBytes: int64(getEnvInt("ATTACHMENT_MAX_UPLOAD_BYTES", 5<<20)),
	}
	jobs := Jobs{
		PurgeInterval:      getEnvDuration("PURGE_INTERVAL", 24*time.Hour),
		OrphanScanInterval: getEnvDuration("ORPHAN_SCAN_INTERVAL", 24*time.Hour),
		BulkConcurrency:    getEnvInt("BULK_CONCURRENCY", 3),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", ""),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}

	return Config{
		App:         app,
		DB:          db,
		Drive:       drive,
		Secrets:     secrets,
		Attachments: attachments,
		Jobs:        jobs,
		MQ:          mq,
	}
}

func (c Config) IsProduction() bool {
	switch c.App.Env {
	case "release", "prod", "production":
		return true
	}
	return false
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

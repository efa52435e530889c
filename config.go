package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"hivewatch/decide"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	ENV_PORT           = "PORT"
	ENV_MONGO_URI      = "MONGO_URI"
	ENV_MONGO_DB       = "MONGO_DB"
	ENV_CLASSIFIER_URL = "CLASSIFIER_URL"
	ENV_UPLOAD_DIR     = "UPLOAD_DIR"
	ENV_REPORTS_FILE   = "REPORTS_FILE"
	ENV_JWT_SECRET     = "JWT_SECRET"
	ENV_ADMIN_EMAIL    = "ADMIN_EMAIL"
	ENV_ADMIN_PASSWORD = "ADMIN_PASSWORD"
)

type LoggerConfig struct {
	LogLevel   string `yaml:"log_level"`
	LogToFile  bool   `yaml:"log_to_file"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
}

type VerifyConfig struct {
	// StoreDelaySeconds is the auto-store countdown clients honor.
	StoreDelaySeconds int           `yaml:"store_delay_seconds"`
	Policy            decide.Policy `yaml:"policy"`
}

type Config struct {
	Port          string       `yaml:"port"`
	MongoURI      string       `yaml:"mongo_uri"`
	MongoDB       string       `yaml:"mongo_db"`
	ClassifierURL string       `yaml:"classifier_url"`
	UploadDir     string       `yaml:"upload_dir"`
	ReportsFile   string       `yaml:"reports_file"` // fallback JSON store
	JWTSecret     string       `yaml:"jwt_secret"`
	AdminEmail    string       `yaml:"admin_email"`
	AdminPassword string       `yaml:"admin_password"`
	Logging       LoggerConfig `yaml:"logging"`
	Verify        VerifyConfig `yaml:"verify"`
}

// mustConfig builds the runtime configuration: defaults, then the optional
// yaml file, then environment overrides.
func mustConfig() Config {
	cfg := Config{
		Port:          "8080",
		MongoURI:      "mongodb://localhost:27017",
		MongoDB:       "honeybee",
		ClassifierURL: "http://127.0.0.1:8000",
		UploadDir:     "uploads",
		ReportsFile:   "reports.json",
		JWTSecret:     "change_me",
		AdminEmail:    "researcher@gkvk.edu.in",
		AdminPassword: "change_me",
		Logging:       LoggerConfig{LogLevel: "info"},
		Verify: VerifyConfig{
			StoreDelaySeconds: 60,
			Policy:            decide.DefaultPolicy(),
		},
	}

	if path := os.Getenv(ENV_CONFIG_FILE_PATH); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Error("cannot read config file", slog.String("path", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			slog.Error("cannot parse config file", slog.String("path", path), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	cfg.Port = getenv(ENV_PORT, cfg.Port)
	cfg.MongoURI = getenv(ENV_MONGO_URI, cfg.MongoURI)
	cfg.MongoDB = getenv(ENV_MONGO_DB, cfg.MongoDB)
	cfg.ClassifierURL = getenv(ENV_CLASSIFIER_URL, cfg.ClassifierURL)
	cfg.UploadDir = getenv(ENV_UPLOAD_DIR, cfg.UploadDir)
	cfg.ReportsFile = getenv(ENV_REPORTS_FILE, cfg.ReportsFile)
	cfg.JWTSecret = getenv(ENV_JWT_SECRET, cfg.JWTSecret)
	cfg.AdminEmail = getenv(ENV_ADMIN_EMAIL, cfg.AdminEmail)
	cfg.AdminPassword = getenv(ENV_ADMIN_PASSWORD, cfg.AdminPassword)

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

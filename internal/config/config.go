package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Firebase struct {
		ProjectID       string `yaml:"project_id"`
		CredentialsFile string `yaml:"credentials_file"`
		APIKey          string `yaml:"api_key"`
	} `yaml:"firebase"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		SigningKey      string `yaml:"signing_key"`
		AccessTTLMin    int    `yaml:"access_ttl_minutes"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
	} `yaml:"auth"`
	Report struct {
		Dir    string `yaml:"dir"`
		Upload bool   `yaml:"upload"`
	} `yaml:"report"`
	S3 struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"s3"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return cfg
}

// Secrets are taken from the environment when present so the yaml file can be
// committed without them.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JWT_SIGNING_KEY"); v != "" {
		cfg.Auth.SigningKey = v
	}
	if v := os.Getenv("FIREBASE_API_KEY"); v != "" {
		cfg.Firebase.APIKey = v
	}
	if v := os.Getenv("FIREBASE_CREDENTIALS_FILE"); v != "" {
		cfg.Firebase.CredentialsFile = v
	}
	if v := os.Getenv("FIREBASE_PROJECT_ID"); v != "" {
		cfg.Firebase.ProjectID = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.S3.AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.S3.SecretKey = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Auth.AccessTTLMin == 0 {
		cfg.Auth.AccessTTLMin = 120
	}
	if cfg.Auth.RefreshTTLHours == 0 {
		cfg.Auth.RefreshTTLHours = 24 * 30 * 2
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "./reports"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
}

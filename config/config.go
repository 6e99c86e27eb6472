package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Users  []User       `yaml:"users"`
	Store  StoreConfig  `yaml:"store"`
	Gemini GeminiConfig `yaml:"gemini"`
	Upload UploadConfig `yaml:"upload"`
	Render RenderConfig `yaml:"render"`
	Minio  MinioConfig  `yaml:"minio"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type StoreConfig struct {
	MaxGenerations int `yaml:"max_generations"`
}

// GeminiConfig configures the extraction model client. Models are tried in
// order until one responds. BaseURL overrides the API endpoint, which is
// mainly useful for pointing tests at a mock server.
type GeminiConfig struct {
	APIKey         string   `yaml:"api_key"`
	BaseURL        string   `yaml:"base_url"`
	Models         []string `yaml:"models"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"`
}

// RenderConfig holds certificate output settings. DocxTemplate is a path to a
// .docx file with {field_name} placeholders; when empty only the PDF output
// is produced.
type RenderConfig struct {
	DocxTemplate     string `yaml:"docx_template"`
	DeclarationPlace string `yaml:"declaration_place"`
}

// MinioConfig configures optional archival of generated bundles. Archival is
// disabled when Endpoint is empty.
type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Store.MaxGenerations == 0 {
		cfg.Store.MaxGenerations = 100
	}
	if len(cfg.Gemini.Models) == 0 {
		cfg.Gemini.Models = []string{
			"gemini-2.5-flash",
			"gemini-2.5-flash-lite",
			"gemini-1.5-flash",
			"gemini-pro",
		}
	}
	if cfg.Gemini.TimeoutSeconds == 0 {
		cfg.Gemini.TimeoutSeconds = 60
	}
	if cfg.Upload.MaxSizeMB == 0 {
		cfg.Upload.MaxSizeMB = 16
	}
	if cfg.Render.DeclarationPlace == "" {
		cfg.Render.DeclarationPlace = "YIWU,CHINA"
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}

	return &cfg, nil
}

// FindUser finds a user by username
func (c *Config) FindUser(username string) *User {
	for i := range c.Users {
		if c.Users[i].Username == username {
			return &c.Users[i]
		}
	}
	return nil
}

// ArchiveEnabled reports whether generated bundles should be copied to object
// storage.
func (c *Config) ArchiveEnabled() bool {
	return c.Minio.Endpoint != ""
}

// MaxUploadBytes returns the upload size ceiling in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}

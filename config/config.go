package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Uploads UploadsConfig `yaml:"uploads"`
	Site    SiteConfig    `yaml:"site"`

	// Secrets come from the environment, not config.yaml.
	MongoURI    string `yaml:"-"`
	MongoDBName string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	BaseURL        string   `yaml:"base_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// UploadsConfig bounds the image pipeline. MaxUploadBytes is enforced at the
// handler before the uploader ever sees the file.
type UploadsConfig struct {
	Dir              string `yaml:"dir"`
	MaxUploadBytes   int64  `yaml:"max_upload_bytes"`
	RecompressOverKB int    `yaml:"recompress_over_kb"`
	MaxWidth         int    `yaml:"max_width"`
	MaxHeight        int    `yaml:"max_height"`
	JPEGQuality      int    `yaml:"jpeg_quality"`
}

// SiteConfig feeds the RSS channel and sitemap output.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}

	c.MongoURI = os.Getenv("MONGO_URI")
	c.MongoDBName = os.Getenv("MONGO_DB")

	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.MaxUploadBytes == 0 {
		c.Uploads.MaxUploadBytes = 10 << 20
	}
	if c.Uploads.RecompressOverKB == 0 {
		c.Uploads.RecompressOverKB = 500
	}
	if c.Uploads.MaxWidth == 0 {
		c.Uploads.MaxWidth = 1200
	}
	if c.Uploads.MaxHeight == 0 {
		c.Uploads.MaxHeight = 800
	}
	if c.Uploads.JPEGQuality == 0 {
		c.Uploads.JPEGQuality = 85
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir      string
	ListenAddr   string
	DBPath       string
	DatabaseURL  string
	PageSize     int
	LogPath      string
	RateLimitRPS int
	Sources      []SourceConfig
}

// SourceConfig names one data file and the adapter that understands its
// shape. Sources are loaded strictly in slice order.
type SourceConfig struct {
	File    string `yaml:"file"`
	Adapter string `yaml:"adapter"`
}

// defaultSources is the built-in registry, in load order. The carsbg
// shards share the cars shape.
var defaultSources = []SourceConfig{
	{File: "cars.json", Adapter: "cars"},
	{File: "carsparking.json", Adapter: "carsparking"},
	{File: "caaarrssssss.json", Adapter: "caaarrssssss"},
	{File: "openlane.json", Adapter: "openlane"},
	{File: "hertzcars.json", Adapter: "hertzcars"},
	{File: "cargr.json", Adapter: "cargr"},
	{File: "autoscoutcars.json", Adapter: "autoscoutcars"},
	{File: "aclass.json", Adapter: "aclass"},
	{File: "kleinanzegencars.json", Adapter: "kleinanzegencars"},
	{File: "carsbg_part_1.json", Adapter: "cars"},
	{File: "carsbg_part_2.json", Adapter: "cars"},
	{File: "carsbg_part_3.json", Adapter: "cars"},
	{File: "carsbg_part_4.json", Adapter: "cars"},
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "data"),
		ListenAddr:   getEnv("LISTEN_ADDR", ":3000"),
		DBPath:       getEnv("DB_PATH", "listings.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PageSize:     getEnvInt("PAGE_SIZE", 12),
		LogPath:      getEnv("LOG_PATH", "autoagora.log"),
		RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 20),
		Sources:      defaultSources,
	}

	if cfg.PageSize < 1 {
		cfg.PageSize = 12
	}

	if err := cfg.loadSourceRegistry(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSourceRegistry replaces the built-in source list with
// config/sources.yaml when that file exists.
func (c *Config) loadSourceRegistry() error {
	path := getEnv("SOURCES_CONFIG", "config/sources.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read source registry: %w", err)
	}

	var registry struct {
		Sources []SourceConfig `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return fmt.Errorf("parse source registry: %w", err)
	}
	if len(registry.Sources) > 0 {
		c.Sources = registry.Sources
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Источники контурных линий
const (
	SourceSrtm2Osm = "srtm2osm"
	SourceOSMFile  = "osmfile"
	SourcePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
	Terrain  TerrainConfig
	Page     PageConfig
	Style    StyleConfig
	Output   OutputConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled   bool
	RenderTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

// TerrainConfig - откуда берутся контуры и как вызывается внешний Srtm2Osm
type TerrainConfig struct {
	Source       string
	Srtm2OsmPath string
	Timeout      time.Duration
}

// PageConfig - размер страницы и поля в единицах страницы (мм)
type PageConfig struct {
	Width  float64
	Height float64
	Margin float64
}

type StyleConfig struct {
	StrokeWidth          float64
	MajorStrokeWidth     float64
	DuplicateMajorStroke bool
}

type OutputConfig struct {
	ResultDir string
}

// SetDefaults регистрирует значения по умолчанию в экземпляре viper
func SetDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 1800)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 300)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RENDER_CACHE_ENABLED", false)
	v.SetDefault("RENDER_CACHE_TTL", 3600)

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "osm2svg-render-workers")
	v.SetDefault("WORKER_MAX_RETRIES", 3)

	v.SetDefault("CONTOUR_SOURCE", SourceSrtm2Osm)
	v.SetDefault("SRTM2OSM_PATH", "./Srtm2Osm/Srtm2Osm.exe")
	v.SetDefault("SRTM2OSM_TIMEOUT", 600)

	v.SetDefault("PAGE_WIDTH", 210.0)
	v.SetDefault("PAGE_HEIGHT", 297.0)
	v.SetDefault("PAGE_MARGIN", 5.0)

	v.SetDefault("STROKE_WIDTH", 0.1)
	v.SetDefault("MAJOR_STROKE_WIDTH", 0.3)
	v.SetDefault("DUPLICATE_MAJOR_STROKE", false)

	v.SetDefault("RESULT_DIR", "./result")
}

// Load читает конфигурацию из .env (если он есть) и окружения
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper(), ".env")
}

// LoadFrom читает конфигурацию через переданный экземпляр viper. CLI передаёт
// сюда viper с привязанными флагами, поэтому флаги имеют приоритет над env.
func LoadFrom(v *viper.Viper, envFile string) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:   v.GetBool("RENDER_CACHE_ENABLED"),
			RenderTTL: time.Duration(v.GetInt("RENDER_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
		},
		Terrain: TerrainConfig{
			Source:       strings.ToLower(strings.TrimSpace(v.GetString("CONTOUR_SOURCE"))),
			Srtm2OsmPath: v.GetString("SRTM2OSM_PATH"),
			Timeout:      time.Duration(v.GetInt("SRTM2OSM_TIMEOUT")) * time.Second,
		},
		Page: PageConfig{
			Width:  v.GetFloat64("PAGE_WIDTH"),
			Height: v.GetFloat64("PAGE_HEIGHT"),
			Margin: v.GetFloat64("PAGE_MARGIN"),
		},
		Style: StyleConfig{
			StrokeWidth:          v.GetFloat64("STROKE_WIDTH"),
			MajorStrokeWidth:     v.GetFloat64("MAJOR_STROKE_WIDTH"),
			DuplicateMajorStroke: v.GetBool("DUPLICATE_MAJOR_STROKE"),
		},
		Output: OutputConfig{
			ResultDir: v.GetString("RESULT_DIR"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Terrain.Source {
	case SourceSrtm2Osm, SourceOSMFile, SourcePostgres:
	default:
		return fmt.Errorf("unknown CONTOUR_SOURCE %q", c.Terrain.Source)
	}
	if c.Page.Width-2*c.Page.Margin <= 0 {
		return fmt.Errorf("page width %.3f leaves no drawable area with margin %.3f", c.Page.Width, c.Page.Margin)
	}
	if c.Page.Height <= 0 {
		return fmt.Errorf("page height must be positive, got %.3f", c.Page.Height)
	}
	if c.Style.StrokeWidth <= 0 || c.Style.MajorStrokeWidth <= 0 {
		return fmt.Errorf("stroke widths must be positive")
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN - строка подключения в формате key=value, понятном pgx и lib/pq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.DBName,
		c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

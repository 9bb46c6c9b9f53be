package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Mongo       MongoConfig
	Redis       RedisConfig
	JWT         JWTConfig
	LLM         LLMConfig
	Speech      SpeechConfig
	LocalMirror LocalMirrorConfig
	Dedup       DedupConfig
	Scraper     ScraperConfig
}

type AppConfig struct {
	Port         string
	Env          string
	LogLevel     string
	StoreBackend string // "postgres", "mongo" or "sqlite"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// SQLitePath is used only by the sqlite backend.
	SQLitePath string
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// LLMConfig describes one completion credential. An empty APIKey means the
// local fallback engine answers instead of the remote model.
type LLMConfig struct {
	Provider    string // "groq" or "gemini"
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Persona     string
	HistorySize int
}

type SpeechConfig struct {
	DeepgramAPIKey   string
	DeepgramBaseURL  string
	DeepgramModel    string
	DeepgramLanguage string
	AzureKey         string
	AzureRegion      string
	AzureBaseURL     string
	AzureFormat      string
}

type LocalMirrorConfig struct {
	Dir    string
	Prefix string
}

type DedupConfig struct {
	Window time.Duration
}

// ScraperConfig configures the standalone website scraper service.
// RateLimit is the number of scrapes allowed per minute; zero disables it.
type ScraperConfig struct {
	Port        string
	RateLimit   int
	Timeout     time.Duration
	PhoneRegion string
	// AllowPrivateHosts permits scraping loopback and private addresses.
	AllowPrivateHosts bool
}

const (
	StoreBackendPostgres = "postgres"
	StoreBackendMongo    = "mongo"
	StoreBackendSQLite   = "sqlite"
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are enough in containers.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	setDefaults()

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	dedupWindow, err := time.ParseDuration(viper.GetString("DEDUP_WINDOW"))
	if err != nil || dedupWindow <= 0 {
		dedupWindow = 30 * time.Second
	}

	scraperTimeout, err := time.ParseDuration(viper.GetString("SCRAPER_TIMEOUT"))
	if err != nil || scraperTimeout <= 0 {
		scraperTimeout = 15 * time.Second
	}

	config := &Config{
		App: AppConfig{
			Port:         viper.GetString("APP_PORT"),
			Env:          viper.GetString("APP_ENV"),
			LogLevel:     viper.GetString("APP_LOG_LEVEL"),
			StoreBackend: viper.GetString("STORE_BACKEND"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),

			SQLitePath: viper.GetString("SQLITE_PATH"),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString("MONGO_URI"),
			Database: viper.GetString("MONGO_DATABASE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		LLM: LLMConfig{
			Provider:    viper.GetString("LLM_PROVIDER"),
			APIKey:      viper.GetString("LLM_API_KEY"),
			BaseURL:     viper.GetString("LLM_BASE_URL"),
			Model:       viper.GetString("LLM_MODEL"),
			Temperature: float32(viper.GetFloat64("LLM_TEMPERATURE")),
			MaxTokens:   viper.GetInt("LLM_MAX_TOKENS"),
			Persona:     viper.GetString("LLM_PERSONA"),
			HistorySize: viper.GetInt("LLM_HISTORY_SIZE"),
		},
		Speech: SpeechConfig{
			DeepgramAPIKey:   viper.GetString("DEEPGRAM_API_KEY"),
			DeepgramBaseURL:  viper.GetString("DEEPGRAM_BASE_URL"),
			DeepgramModel:    viper.GetString("DEEPGRAM_MODEL"),
			DeepgramLanguage: viper.GetString("DEEPGRAM_LANGUAGE"),
			AzureKey:         viper.GetString("AZURE_SPEECH_KEY"),
			AzureRegion:      viper.GetString("AZURE_SPEECH_REGION"),
			AzureBaseURL:     viper.GetString("AZURE_SPEECH_BASE_URL"),
			AzureFormat:      viper.GetString("AZURE_SPEECH_FORMAT"),
		},
		LocalMirror: LocalMirrorConfig{
			Dir:    viper.GetString("LOCAL_MIRROR_DIR"),
			Prefix: viper.GetString("LOCAL_MIRROR_PREFIX"),
		},
		Dedup: DedupConfig{
			Window: dedupWindow,
		},
		Scraper: ScraperConfig{
			Port:        viper.GetString("SCRAPER_PORT"),
			RateLimit:   viper.GetInt("SCRAPER_RATE_LIMIT"),
			Timeout:     scraperTimeout,
			PhoneRegion: viper.GetString("SCRAPER_PHONE_REGION"),

			AllowPrivateHosts: viper.GetBool("SCRAPER_ALLOW_PRIVATE_HOSTS"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("STORE_BACKEND", StoreBackendPostgres)
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SQLITE_PATH", "./data/agent.db")
	viper.SetDefault("MONGO_DATABASE", "ai_calling_agent")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("LLM_PROVIDER", "groq")
	viper.SetDefault("LLM_TEMPERATURE", 0.7)
	viper.SetDefault("LLM_MAX_TOKENS", 1024)
	viper.SetDefault("LLM_HISTORY_SIZE", 20)
	viper.SetDefault("DEEPGRAM_BASE_URL", "https://api.deepgram.com")
	viper.SetDefault("DEEPGRAM_MODEL", "nova-2")
	viper.SetDefault("DEEPGRAM_LANGUAGE", "en")
	viper.SetDefault("AZURE_SPEECH_FORMAT", "audio-16khz-32kbitrate-mono-mp3")
	viper.SetDefault("LOCAL_MIRROR_DIR", "./data/mirror")
	viper.SetDefault("LOCAL_MIRROR_PREFIX", "ai_calling_agent_")
	viper.SetDefault("SCRAPER_PORT", "5001")
	viper.SetDefault("SCRAPER_RATE_LIMIT", 30)
	viper.SetDefault("SCRAPER_PHONE_REGION", "IN")
	viper.SetDefault("SCRAPER_ALLOW_PRIVATE_HOSTS", false)
}

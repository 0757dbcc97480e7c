package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Tipos de origem dos registros de venda
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Source          Source          `mapstructure:",squash"`
	SnapshotRefresh SnapshotRefresh `mapstructure:",squash"`
	Analytics       Analytics       `mapstructure:",squash"`
	Cache           Cache           `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Source define de onde as linhas brutas de vendas são carregadas
type Source struct {
	Kind      string `mapstructure:"source_kind"`
	Path      string `mapstructure:"source_path"`
	URL       string `mapstructure:"source_url"`
	Sheet     string `mapstructure:"source_sheet"`
	Table     string `mapstructure:"source_table"`
	TimeoutMS int    `mapstructure:"source_timeout_ms"`
}

type SnapshotRefresh struct {
	CronSchedule string `mapstructure:"snapshot_refresh_cron"`
	Enabled      bool   `mapstructure:"snapshot_refresh_enabled"`
	LoadOnStart  bool   `mapstructure:"snapshot_refresh_load_on_start"`
}

type Analytics struct {
	TopProducts        int     `mapstructure:"analytics_top_products"`
	LeaderboardSize    int     `mapstructure:"analytics_leaderboard_size"`
	ForecastHorizon    int     `mapstructure:"analytics_forecast_horizon"`
	ForecastMaxHorizon int     `mapstructure:"analytics_forecast_max_horizon"`
	ForecastWindow     int     `mapstructure:"analytics_forecast_window"`
	BaseConfidence     float64 `mapstructure:"analytics_base_confidence"`
	ConfidenceDecay    float64 `mapstructure:"analytics_confidence_decay"`
	MinHistory         int     `mapstructure:"analytics_min_history"`
	SeasonalModel      string  `mapstructure:"analytics_seasonal_model"`
}

type Cache struct {
	Enabled bool `mapstructure:"cache_enabled"`
	Size    int  `mapstructure:"cache_size"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SOURCE_KIND", SourceCSV)
	viper.SetDefault("SOURCE_PATH", "data/sales.csv")
	viper.SetDefault("SOURCE_URL", "")
	viper.SetDefault("SOURCE_SHEET", "") // vazio = primeira planilha
	viper.SetDefault("SOURCE_TABLE", "sales_records")
	viper.SetDefault("SOURCE_TIMEOUT_MS", 30000)

	viper.SetDefault("SNAPSHOT_REFRESH_CRON", "*/30 * * * *") // A cada 30 minutos
	viper.SetDefault("SNAPSHOT_REFRESH_ENABLED", false)
	viper.SetDefault("SNAPSHOT_REFRESH_LOAD_ON_START", true)

	viper.SetDefault("ANALYTICS_TOP_PRODUCTS", 5)
	viper.SetDefault("ANALYTICS_LEADERBOARD_SIZE", 15)
	viper.SetDefault("ANALYTICS_FORECAST_HORIZON", 6)
	viper.SetDefault("ANALYTICS_FORECAST_MAX_HORIZON", 24)
	viper.SetDefault("ANALYTICS_FORECAST_WINDOW", 6)
	viper.SetDefault("ANALYTICS_BASE_CONFIDENCE", 0.95)
	viper.SetDefault("ANALYTICS_CONFIDENCE_DECAY", 0.05)
	viper.SetDefault("ANALYTICS_MIN_HISTORY", 2)
	viper.SetDefault("ANALYTICS_SEASONAL_MODEL", "sinusoidal") // sinusoidal | quarterly | none

	viper.SetDefault("CACHE_ENABLED", true)
	viper.SetDefault("CACHE_SIZE", 256)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Source.Kind = strings.ToLower(strings.TrimSpace(config.Source.Kind))

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}

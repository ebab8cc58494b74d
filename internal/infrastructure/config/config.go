package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Drivers de armazenamento aceitos em STORE_DRIVER
const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
)

// Config reúne a configuração da aplicação lida do ambiente
type Config struct {
	HTTPPort           int
	APIBasePath        string
	CORSAllowedOrigins []string

	StoreDriver string
	BoltPath    string

	Database       DatabaseConfig
	MigrationsPath string

	LogMode       string
	LogFileEnable bool
	LogFilename   string
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// ConnectionString retorna DATABASE_URL, ou a URL montada a partir das variáveis DB_*
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// Load lê a configuração das variáveis de ambiente, aplicando os valores padrão
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:           cast.ToInt(getEnv("HTTP_PORT", "8080")),
		APIBasePath:        getEnv("API_BASE_PATH", "/api/v1"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreBolt)),
		BoltPath:           getEnv("BOLT_PATH", "data/erp-caixa.db"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            cast.ToInt(getEnv("DB_PORT", "5432")),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "erp_caixa"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  cast.ToInt32(getEnv("DB_MAX_CONNECTIONS", "10")),
			MinConnections:  cast.ToInt32(getEnv("DB_MIN_CONNECTIONS", "2")),
			MaxConnLifetime: time.Duration(cast.ToInt(getEnv("DB_MAX_LIFETIME", "300"))) * time.Second,
		},
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		LogMode:        getEnv("LOG_MODE", "development"),
		LogFileEnable:  cast.ToBool(getEnv("LOG_FILE_ENABLE", "false")),
		LogFilename:    getEnv("LOG_FILENAME", "logs/erp-caixa.log"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica os valores que impedem a inicialização
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT inválida: %d", c.HTTPPort)
	}
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	case StoreBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH obrigatório para o driver bolt")
		}
	default:
		return fmt.Errorf("STORE_DRIVER desconhecido: %q", c.StoreDriver)
	}
	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) maior que DB_MAX_CONNECTIONS (%d)",
			c.Database.MinConnections, c.Database.MaxConnections)
	}
	return nil
}

// IsProduction indica se a aplicação roda em modo de produção
func (c *Config) IsProduction() bool {
	return c.LogMode == "production"
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

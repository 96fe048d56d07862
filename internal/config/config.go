package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	MaxUploadMB    int
	LogFile        string
	CatalogDSN     string        // postgres://..., sqlite:path, путь к таблице или пусто (демо-каталог)
	CatalogTimeout time.Duration // таймаут на чтение каталога
	ReviewLanguage string        // язык подписей в листе проверки: es | en
}

func Load() Config {
	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "32"))
	timeout, err := time.ParseDuration(getenv("CATALOG_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/invoice-matcher.log"),
		CatalogDSN:     strings.TrimSpace(os.Getenv("CATALOG_DSN")),
		CatalogTimeout: timeout,
		ReviewLanguage: strings.ToLower(getenv("REVIEW_LANGUAGE", "es")),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Package config загружает конфигурацию сервера из YAML файла.
//
// Значения вида ${VAR} подставляются из переменных окружения до
// разбора YAML — секреты (API ключ) не хранятся в файле открытым
// текстом. Конфигурация читается один раз на старте и дальше
// неизменяема; никакого глобального mutable-состояния.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации, зеркалит config.yaml.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
	Category CategoryConfig `yaml:"category"`
	App      AppSpecific    `yaml:"app"`
}

// ServerConfig — настройки HTTP сервера.
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// AIConfig — настройки AI коллаборатора.
//
// Пустой APIKey выключает AI целиком: все операции работают на
// детерминированных fallback-путях, ответы помечаются aiStatus=disabled.
type AIConfig struct {
	APIKey      string        `yaml:"api_key"`  // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"` // Для OpenAI-совместимых провайдеров
	Model       string        `yaml:"model"`
	Temperature float64       `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`    // Таймаут одного вызова
	RateLimit   int           `yaml:"rate_limit"` // Запросов в минуту, 0 = без лимита
	Burst       int           `yaml:"burst"`
}

// Enabled сообщает настроен ли AI коллаборатор.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// CategoryConfig — настройки движка категорий.
type CategoryConfig struct {
	Locale string `yaml:"locale"` // Язык имён категорий в AI-ответе, например "en" или "it"
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// GetDefaults возвращает конфигурацию с заполненными дефолтами
// для пропущенных полей.
func (c *AppConfig) GetDefaults() *AppConfig {
	result := *c

	if result.Server.Port == 0 {
		result.Server.Port = 3000
	}
	if result.Server.ReadTimeout == 0 {
		result.Server.ReadTimeout = 15 * time.Second
	}
	if result.Server.WriteTimeout == 0 {
		// Запись ответа ждёт завершения AI вызова, поэтому больше таймаута AI
		result.Server.WriteTimeout = 90 * time.Second
	}
	if result.Server.IdleTimeout == 0 {
		result.Server.IdleTimeout = 60 * time.Second
	}

	if result.AI.Model == "" {
		result.AI.Model = "gpt-4o-mini"
	}
	if result.AI.Temperature == 0 {
		result.AI.Temperature = 0.3
	}
	if result.AI.MaxTokens == 0 {
		result.AI.MaxTokens = 1024
	}
	if result.AI.Timeout == 0 {
		result.AI.Timeout = 60 * time.Second
	}
	if result.AI.Burst == 0 {
		result.AI.Burst = 5
	}

	if result.Category.Locale == "" {
		result.Category.Locale = "en"
	}

	return &result
}

// Load читает YAML файл, подставляет ENV переменные и возвращает
// готовую структуру с дефолтами.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	result := cfg.GetDefaults()

	// 5. Валидируем критические настройки
	if err := result.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return result, nil
}

// validate проверяет критические поля.
func (c *AppConfig) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.AI.Enabled() && c.AI.Model == "" {
		return fmt.Errorf("ai.model is required when ai.api_key is set")
	}
	return nil
}

// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Работает только через интерфейс llm.Provider: остальному коду всё
// равно какой провайдер за ним стоит. Поверх SDK добавлены две вещи,
// которых требует серверный режим работы:
//   - таймаут на один вызов (зависший коллаборатор = обычный отказ,
//     обработчик запроса уходит на fallback, а не висит)
//   - опциональный rate limiter, общий для всех конкурентных запросов
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/beatercode/organAizer-server/pkg/config"
	"github.com/beatercode/organAizer-server/pkg/llm"
	"github.com/beatercode/organAizer-server/pkg/utils"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter // nil — без лимита
}

// NewClient создает OpenAI клиент на основе конфигурации.
//
// Все настройки из конфигурации, никакого хардкода. BaseURL позволяет
// подключать non-OpenAI провайдеров (DeepSeek, Zai и т.д.).
func NewClient(cfg config.AIConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		// rate_limit в запросах/минуту → rate.Limit в запросах/секунду
		perSec := float64(cfg.RateLimit) / 60.0
		limiter = rate.NewLimiter(rate.Limit(perSec), cfg.Burst)
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		limiter: limiter,
	}
}

// Chat выполняет запрос к API и возвращает текст ответа модели.
//
// Алгоритм:
//  1. Ждём слот лимитера (если настроен)
//  2. Ограничиваем вызов таймаутом
//  3. Конвертируем сообщения в формат SDK и вызываем API
//  4. Возвращаем content первого choice
//
// Все ошибки возвращаются, никаких panic.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	startTime := time.Now()

	utils.Debug("LLM request started",
		"model", c.model,
		"messages_count", len(req.Messages))

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	openaiMsgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		openaiMsgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    openaiMsgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content

	utils.Info("LLM response received",
		"model", c.model,
		"content_length", len(content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return content, nil
}

// Проверка контракта на этапе компиляции
var _ llm.Provider = (*Client)(nil)

// Package gemini - оракул рекомендаций на базе Google Gemini
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/itinerary-microservice/internal/domain"
	"github.com/itinerary-microservice/internal/domain/repository"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
	maxRetryDelay      = 10 * time.Second
	maxOutputTokens    = 8192
)

// Ensure Client implements RecommendationRepository interface
var _ repository.RecommendationRepository = (*Client)(nil)

// Config - настройки клиента Gemini
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// RequestTimeout - общий бюджет на все попытки; одной попытке
	// достаётся RequestTimeout / MaxAttempts
	RequestTimeout time.Duration
	MaxAttempts    uint
	RetryDelay     time.Duration
	HTTPClient     *http.Client
}

// Client - клиент Gemini, возвращающий кандидатов по промпту
type Client struct {
	config Config
	client *genai.Client
	logger *zap.Logger
}

// NewClient создает клиента. Без API ключа возвращает ошибку с domain.ErrMissingCredentials.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrMissingCredentials)
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	clientConfig := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     cfg.APIKey,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("Gemini client initialized",
		zap.String("model", cfg.Model),
		zap.Bool("custom_base_url", cfg.BaseURL != ""))

	return &Client{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// Recommend запрашивает кандидатов у модели. Временные ошибки повторяются
// с backoff; лимиты и квоты не повторяются.
func (c *Client) Recommend(ctx context.Context, prompt string) ([]domain.RawDestination, error) {
	modelName := strings.TrimPrefix(c.config.Model, "models/")

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	temperature := float32(0.4)
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   destinationsSchema(),
	}

	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}
	attemptTimeout := c.config.RequestTimeout / time.Duration(c.config.MaxAttempts)

	var resp *genai.GenerateContentResponse
	var lastErr error
	err := retry.Do(
		func() error {
			attemptCtx := ctx
			if attemptTimeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, attemptTimeout)
				defer cancel()
			}

			var genErr error
			resp, genErr = c.client.Models.GenerateContent(attemptCtx, modelName, contents, genConfig)
			if genErr == nil {
				return nil
			}

			lastErr = classify(genErr)
			if errors.Is(lastErr, domain.ErrOracleUnavailable) && ctx.Err() == nil {
				c.logger.Warn("Gemini transient error, retrying", zap.Error(genErr))
				return lastErr
			}
			c.logger.Error("Gemini non-transient error", zap.Error(genErr))
			return retry.Unrecoverable(lastErr)
		},
		retry.Context(ctx),
		retry.Attempts(c.config.MaxAttempts),
		retry.Delay(c.config.RetryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("Retrying Gemini call", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		if lastErr == nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
		}
		return nil, fmt.Errorf("gemini: %w", lastErr)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("gemini: %w: empty response", domain.ErrOracleMalformed)
	}

	candidates, err := ParseCandidates(text)
	if err != nil {
		c.logger.Warn("Failed to parse Gemini response",
			zap.Error(err),
			zap.Int("length", len(text)))
		return nil, fmt.Errorf("gemini: %w", err)
	}

	c.logger.Debug("Gemini returned candidates", zap.Int("count", len(candidates)))

	return candidates, nil
}

// classify приводит ошибку SDK к доменной ошибке оракула
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusPaymentRequired:
			return fmt.Errorf("%w: %s", domain.ErrOracleQuotaExhausted, apiErr.Message)
		case apiErr.Code == http.StatusTooManyRequests:
			// текст 429 у Gemini всегда упоминает quota, различаем по QuotaFailure
			if dailyQuotaExceeded(apiErr.Details) {
				return fmt.Errorf("%w: %s", domain.ErrOracleQuotaExhausted, apiErr.Message)
			}
			return fmt.Errorf("%w: %s", domain.ErrOracleRateLimited, apiErr.Message)
		case apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, apiErr.Message)
		case apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %s", domain.ErrOracleUnavailable, apiErr.Message)
		default:
			return fmt.Errorf("%w: %d %s", domain.ErrOracleMalformed, apiErr.Code, apiErr.Message)
		}
	}

	// сеть, таймауты и прочие ошибки транспорта
	return fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
}

// dailyQuotaExceeded - true, если google.rpc.QuotaFailure называет только суточные
// квоты (quotaId ...PerDay...). Минутные лимиты и 429 без деталей - rate limit.
func dailyQuotaExceeded(details []map[string]any) bool {
	daily := false
	for _, detail := range details {
		typ, _ := detail["@type"].(string)
		if !strings.HasSuffix(typ, "google.rpc.QuotaFailure") {
			continue
		}
		violations, _ := detail["violations"].([]any)
		for _, v := range violations {
			violation, _ := v.(map[string]any)
			quotaID, _ := violation["quotaId"].(string)
			switch {
			case strings.Contains(quotaID, "PerMinute"):
				return false
			case strings.Contains(quotaID, "PerDay"):
				daily = true
			}
		}
	}
	return daily
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// ParseCandidates разбирает ответ модели: JSON массив или объект с полем
// destinations, возможно внутри блока ```json.
func ParseCandidates(text string) ([]domain.RawDestination, error) {
	jsonText := extractJSON(text)

	var list []domain.RawDestination
	if err := json.Unmarshal([]byte(jsonText), &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Destinations []domain.RawDestination `json:"destinations"`
	}
	if err := json.Unmarshal([]byte(jsonText), &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleMalformed, err)
	}
	if wrapped.Destinations == nil {
		return nil, fmt.Errorf("%w: no destinations in response", domain.ErrOracleMalformed)
	}
	return wrapped.Destinations, nil
}

// extractJSON вырезает JSON из ответа, который может содержать markdown
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if start := strings.Index(text, "```"); start != -1 {
		body := text[start+3:]
		body = strings.TrimPrefix(body, "json")
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimSpace(body[:end])
		}
	}

	if strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{") {
		return text
	}

	start := strings.IndexAny(text, "[{")
	end := strings.LastIndexAny(text, "]}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

func destinationsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":                 {Type: genai.TypeString},
				"category":             {Type: genai.TypeString, Description: "one of the supported categories"},
				"description":          {Type: genai.TypeString},
				"rating":               {Type: genai.TypeNumber, Description: "0 to 5"},
				"popularity":           {Type: genai.TypeInteger, Description: "1 to 10"},
				"visitTime":            {Type: genai.TypeInteger, Description: "minutes on site"},
				"travelTimeFromSource": {Type: genai.TypeInteger, Description: "minutes from the start location"},
				"distanceFromSource":   {Type: genai.TypeNumber, Description: "km from the start location"},
				"distanceToSource":     {Type: genai.TypeNumber, Description: "km to the home address"},
				"latitude":             {Type: genai.TypeNumber},
				"longitude":            {Type: genai.TypeNumber},
			},
			Required: []string{"name", "category", "rating", "visitTime", "travelTimeFromSource", "distanceFromSource"},
		},
	}
}

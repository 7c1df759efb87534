package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-market-insight/internal/market/config"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/pkg/logger"
	"golang-market-insight/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository implements MarketDataSource against the Google Gemini API.
type geminiAIRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new Gemini-backed MarketDataSource.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (MarketDataSource, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	tokenLimiter := ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute)

	return &geminiAIRepository{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		tokenLimiter:   tokenLimiter,
		genAiClient:    genAiClient,
	}, nil
}

// FetchMarketSnapshot retrieves the market-wide snapshot of indices, sectors
// and sentiment.
func (r *geminiAIRepository) FetchMarketSnapshot(ctx context.Context) (*dto.MarketSnapshot, error) {
	text, err := r.executeGeminiRequest(ctx, BuildMarketSnapshotPrompt())
	if err != nil {
		return nil, dto.NewUpstreamError("market snapshot", err)
	}

	var snapshot dto.MarketSnapshot
	if err := safeParseJSON(text, &snapshot); err != nil {
		return nil, dto.NewUpstreamError("market snapshot", err)
	}
	return &snapshot, nil
}

// FetchStockRecommendations retrieves a fresh batch of stock picks.
func (r *geminiAIRepository) FetchStockRecommendations(ctx context.Context) (*dto.RecommendationBatch, error) {
	text, err := r.executeGeminiRequest(ctx, BuildStockRecommendationsPrompt())
	if err != nil {
		return nil, dto.NewUpstreamError("stock recommendations", err)
	}

	var batch dto.RecommendationBatch
	if err := safeParseJSON(text, &batch); err != nil {
		return nil, dto.NewUpstreamError("stock recommendations", err)
	}
	return &batch, nil
}

// FetchStockPrices retrieves refreshed prices for the given tickers, keyed by
// ticker as returned by the source.
func (r *geminiAIRepository) FetchStockPrices(ctx context.Context, tickers []string) (map[string]float64, error) {
	if len(tickers) == 0 {
		return map[string]float64{}, nil
	}

	text, err := r.executeGeminiRequest(ctx, BuildStockPricesPrompt(tickers))
	if err != nil {
		return nil, dto.NewUpstreamError("stock prices", err)
	}

	var batch dto.StockPriceBatch
	if err := safeParseJSON(text, &batch); err != nil {
		return nil, dto.NewUpstreamError("stock prices", err)
	}

	prices := make(map[string]float64, len(batch.StockPrices))
	for _, p := range batch.StockPrices {
		prices[p.Ticker] = p.CurrentPrice
	}
	return prices, nil
}

// GenerateReasoning produces reasoning text for a recommendation. It never
// fails the caller: on any error the returned string describes the failure and
// is stored as-is, a deliberately degraded but non-fatal result.
func (r *geminiAIRepository) GenerateReasoning(ctx context.Context, prompt string) string {
	text, err := r.executeGeminiRequest(ctx, prompt)
	if err != nil {
		r.logger.Warn("Reasoning generation failed, storing error text", logger.ErrorField(err))
		return fmt.Sprintf("Gemini error: %v", err)
	}
	return strings.TrimSpace(text)
}

func (r *geminiAIRepository) executeGeminiRequest(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	geminiTokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(geminiTokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(geminiTokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Parts: []dto.Part{{Text: prompt}}}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("Failed to marshal payload", logger.ErrorField(err))
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent?key=%s", r.cfg.Gemini.BaseURL, r.cfg.Gemini.Model, r.cfg.Gemini.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return geminiResp.Text(), nil
}

// safeParseJSON unmarshals model output into v, stripping markdown code
// fences and a leading "json" tag first. Output that still cannot be parsed
// is surfaced as a MalformedPayloadError carrying the raw text.
func safeParseJSON(text string, v interface{}) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.Trim(cleaned, "`")
	cleaned = strings.TrimPrefix(cleaned, "json")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &dto.MalformedPayloadError{Raw: text}
	}
	return nil
}

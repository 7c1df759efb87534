package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

type stubMarketDataService struct {
	indices   []dto.IndexResponse
	updateErr error
	updated   bool
}

func (s *stubMarketDataService) GetIndices(ctx context.Context) ([]dto.IndexResponse, error) {
	return s.indices, nil
}

func (s *stubMarketDataService) UpdateMarketData(ctx context.Context) error {
	s.updated = true
	return s.updateErr
}

type stubRecommendationService struct {
	recs        []dto.RecommendationResponse
	created     int
	generateErr error
	alertTime   string
}

func (s *stubRecommendationService) GetRecommendations(ctx context.Context, filter repository.RecommendationFilter) ([]dto.RecommendationResponse, error) {
	return s.recs, nil
}

func (s *stubRecommendationService) GenerateRecommendations(ctx context.Context, alertTime string) (int, error) {
	s.alertTime = alertTime
	return s.created, s.generateErr
}

type stubAnalysisService struct {
	analysis *dto.AnalysisResponse
	posted   *dto.PostAnalysisRequest
	postErr  error
}

func (s *stubAnalysisService) GetAnalysis(ctx context.Context) (*dto.AnalysisResponse, error) {
	return s.analysis, nil
}

func (s *stubAnalysisService) PostAnalysis(ctx context.Context, req *dto.PostAnalysisRequest) error {
	s.posted = req
	return s.postErr
}

func newMarketTestServer(t *testing.T, marketSvc *stubMarketDataService, recSvc *stubRecommendationService, analysisSvc *stubAnalysisService) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewMarketHandler(marketSvc, recSvc, analysisSvc, testLogger(t))
	h.RegisterRoutes(e.Group("/api/stocks"))
	return e
}

func TestGetIndicesEndpoint(t *testing.T) {
	marketSvc := &stubMarketDataService{
		indices: []dto.IndexResponse{
			{Name: "NIFTY 50", CurrentValue: 24500, ChangeValue: 120, ChangePercent: 0.49, IsPositive: true},
		},
	}
	e := newMarketTestServer(t, marketSvc, &stubRecommendationService{}, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/stocks/nifty-indices", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []dto.IndexResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "NIFTY 50", body.Data[0].Name)
	assert.True(t, body.Data[0].IsPositive)
}

func TestGetRecommendationsRejectsBadDate(t *testing.T) {
	e := newMarketTestServer(t, &stubMarketDataService{}, &stubRecommendationService{}, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/stocks/recommendations?date=29-08-2026", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAnalysisEmptyObject(t *testing.T) {
	e := newMarketTestServer(t, &stubMarketDataService{}, &stubRecommendationService{}, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodGet, "/api/stocks/analysis", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())
}

func TestRealTimeUpdateDispatch(t *testing.T) {
	marketSvc := &stubMarketDataService{}
	recSvc := &stubRecommendationService{created: 3}
	e := newMarketTestServer(t, marketSvc, recSvc, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/real-time-update",
		strings.NewReader(`{"action":"update_market_data"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, marketSvc.updated)

	req = httptest.NewRequest(http.MethodPost, "/api/stocks/real-time-update",
		strings.NewReader(`{"action":"generate_recommendations","alertTime":"2_PM"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2_PM", recSvc.alertTime)

	var body dto.RealTimeUpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Created)
	assert.Equal(t, 3, *body.Created)
}

func TestRealTimeUpdateDefaultsAlertTime(t *testing.T) {
	recSvc := &stubRecommendationService{}
	e := newMarketTestServer(t, &stubMarketDataService{}, recSvc, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/real-time-update",
		strings.NewReader(`{"action":"generate_recommendations"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10_AM", recSvc.alertTime)
}

func TestRealTimeUpdateUnknownAction(t *testing.T) {
	e := newMarketTestServer(t, &stubMarketDataService{}, &stubRecommendationService{}, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/real-time-update",
		strings.NewReader(`{"action":"bogus"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRealTimeUpdateUpstreamFailure(t *testing.T) {
	marketSvc := &stubMarketDataService{
		updateErr: dto.NewUpstreamError("market snapshot", errors.New("timeout")),
	}
	e := newMarketTestServer(t, marketSvc, &stubRecommendationService{}, &stubAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/stocks/real-time-update",
		strings.NewReader(`{"action":"update_market_data"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type stubPortfolioService struct {
	portfolio *dto.PortfolioResponse
	addErr    error
}

func (s *stubPortfolioService) GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	return s.portfolio, nil
}

func (s *stubPortfolioService) AddHolding(ctx context.Context, req *dto.AddHoldingRequest) (*entity.Holding, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &entity.Holding{Ticker: req.Ticker}, nil
}

func TestAddHoldingEndpoint(t *testing.T) {
	e := echo.New()
	h := NewPortfolioHandler(&stubPortfolioService{}, testLogger(t))
	h.RegisterRoutes(e.Group("/api/stock"))

	req := httptest.NewRequest(http.MethodPost, "/api/stock/portfolio",
		strings.NewReader(`{"ticker":"RELIANCE","buy_price":100,"volume":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Stock RELIANCE added/updated")
}

func TestAddHoldingValidationFailure(t *testing.T) {
	e := echo.New()
	h := NewPortfolioHandler(&stubPortfolioService{
		addErr: dto.NewValidationError("ticker", "ticker is required"),
	}, testLogger(t))
	h.RegisterRoutes(e.Group("/api/stock"))

	req := httptest.NewRequest(http.MethodPost, "/api/stock/portfolio",
		strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

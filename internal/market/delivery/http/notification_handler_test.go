package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-market-insight/internal/market/dto"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationService struct {
	resp      *dto.NotificationsResponse
	status    string
	actionErr error
	request   *dto.NotificationRequest
}

func (s *stubNotificationService) GetNotifications(ctx context.Context, userID string, limit int) (*dto.NotificationsResponse, error) {
	return s.resp, nil
}

func (s *stubNotificationService) HandleAction(ctx context.Context, req *dto.NotificationRequest) (string, error) {
	s.request = req
	return s.status, s.actionErr
}

func newNotificationTestServer(t *testing.T, svc *stubNotificationService) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewNotificationHandler(svc, testLogger(t))
	h.RegisterRoutes(e.Group("/api/notifications"))
	return e
}

func TestGetNotificationsEndpoint(t *testing.T) {
	svc := &stubNotificationService{
		resp: &dto.NotificationsResponse{
			Preferences: dto.PreferencesDTO{PushNotificationsEnabled: true},
			History:     []dto.NotificationDTO{{ID: 1, Title: "New 10_AM recommendations"}},
		},
	}
	e := newNotificationTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/notifications?limit=5", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New 10_AM recommendations")
}

func TestGetNotificationsRejectsBadLimit(t *testing.T) {
	e := newNotificationTestServer(t, &stubNotificationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/notifications?limit=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostNotificationDispatch(t *testing.T) {
	svc := &stubNotificationService{status: "updated"}
	e := newNotificationTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/notifications",
		strings.NewReader(`{"type":"update_preferences","morning_alerts_enabled":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"updated"`)
	require.NotNil(t, svc.request)
	assert.Equal(t, dto.NotificationActionUpdatePreferences, svc.request.Type)
	require.NotNil(t, svc.request.MorningAlertsEnabled)
	assert.False(t, *svc.request.MorningAlertsEnabled)
}

func TestPostNotificationNotFound(t *testing.T) {
	svc := &stubNotificationService{actionErr: dto.ErrNotFound}
	e := newNotificationTestServer(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/notifications",
		strings.NewReader(`{"type":"mark_as_read","notification_id":99}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

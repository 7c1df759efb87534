package service

import (
	"context"

	"golang-market-insight/internal/entity"
	"golang-market-insight/internal/market/dto"
	"golang-market-insight/internal/market/repository"
	"golang-market-insight/pkg/common"
	"golang-market-insight/pkg/logger"
	"golang-market-insight/pkg/utils"
)

// NotificationService manages the notification history and per-user
// preference toggles.
type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, limit int) (*dto.NotificationsResponse, error)
	HandleAction(ctx context.Context, req *dto.NotificationRequest) (string, error)
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifRepo repository.NotificationRepository, log *logger.Logger) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		logger:    log,
	}
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	logger    *logger.Logger
}

// GetNotifications returns the user's preferences and recent history. The
// preference row is created lazily with all alerts enabled on first access.
func (s *notificationService) GetNotifications(ctx context.Context, userID string, limit int) (*dto.NotificationsResponse, error) {
	if userID == "" {
		userID = common.DefaultUserID
	}
	if limit <= 0 {
		limit = 20
	}

	prefs, err := s.notifRepo.FindOrCreatePreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationsResponse{
		Preferences: dto.PreferencesDTO{
			PushNotificationsEnabled: prefs.PushNotificationsEnabled,
			MorningAlertsEnabled:     prefs.MorningAlertsEnabled,
			AfternoonAlertsEnabled:   prefs.AfternoonAlertsEnabled,
		},
		History: make([]dto.NotificationDTO, 0, len(notifications)),
	}
	for _, n := range notifications {
		item := dto.NotificationDTO{
			ID:               n.ID,
			Title:            n.Title,
			Message:          n.Message,
			NotificationType: n.NotificationType,
		}
		if !n.SentAt.IsZero() {
			item.SentAt = n.SentAt.Format("2006-01-02")
		}
		if n.ReadAt != nil {
			item.ReadAt = n.ReadAt.Format("2006-01-02")
		}
		resp.History = append(resp.History, item)
	}
	return resp, nil
}

// HandleAction dispatches an action-typed notification request. Validation
// failures are rejected before any mutation.
func (s *notificationService) HandleAction(ctx context.Context, req *dto.NotificationRequest) (string, error) {
	userID := req.UserID
	if userID == "" {
		userID = common.DefaultUserID
	}

	switch req.Type {
	case dto.NotificationActionSend:
		if req.Title == "" || req.Message == "" {
			return "", dto.NewValidationError("title", "title and message required")
		}
		n := &entity.Notification{
			UserID:           userID,
			NotificationType: common.NotificationTypeStockRecommendation,
			Title:            req.Title,
			Message:          req.Message,
			SentAt:           utils.TimeNowIST(),
			CreatedAt:        utils.DateNowIST(),
		}
		if err := s.notifRepo.Create(ctx, n); err != nil {
			return "", err
		}
		return "sent", nil

	case dto.NotificationActionUpdatePreferences:
		prefs, err := s.notifRepo.FindOrCreatePreferences(ctx, userID)
		if err != nil {
			return "", err
		}
		if req.PushNotificationsEnabled != nil {
			prefs.PushNotificationsEnabled = *req.PushNotificationsEnabled
		}
		if req.MorningAlertsEnabled != nil {
			prefs.MorningAlertsEnabled = *req.MorningAlertsEnabled
		}
		if req.AfternoonAlertsEnabled != nil {
			prefs.AfternoonAlertsEnabled = *req.AfternoonAlertsEnabled
		}
		prefs.UpdatedAt = utils.DateNowIST()
		if err := s.notifRepo.SavePreferences(ctx, prefs); err != nil {
			return "", err
		}
		return "updated", nil

	case dto.NotificationActionMarkAsRead:
		if req.NotificationID == nil {
			return "", dto.NewValidationError("notification_id", "notification_id required for mark_as_read")
		}
		n, err := s.notifRepo.FindByID(ctx, *req.NotificationID)
		if err != nil {
			return "", err
		}
		if n == nil {
			return "", dto.ErrNotFound
		}
		now := utils.TimeNowIST()
		n.ReadAt = &now
		if err := s.notifRepo.Update(ctx, n); err != nil {
			return "", err
		}
		return "ok", nil

	default:
		return "", dto.NewValidationError("type", "unknown type")
	}
}

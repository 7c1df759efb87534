package repository

import (
	"context"
	"errors"

	"golang-market-insight/internal/entity"

	"gorm.io/gorm"
)

// NotificationRepository defines data access for the notification history and
// per-user preferences.
type NotificationRepository interface {
	FindByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	FindByID(ctx context.Context, id uint) (*entity.Notification, error)
	Create(ctx context.Context, n *entity.Notification) error
	Update(ctx context.Context, n *entity.Notification) error
	FindOrCreatePreferences(ctx context.Context, userID string) (*entity.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error
}

// NewNotificationRepository creates a new GORM-based notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

type notificationRepository struct {
	db *gorm.DB
}

// FindByUser retrieves a user's notifications, most recently sent first.
func (r *notificationRepository) FindByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByID retrieves one notification, or nil when absent.
func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create appends a notification record.
func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

// Update saves a mutated notification (only ReadAt ever changes).
func (r *notificationRepository) Update(ctx context.Context, n *entity.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// FindOrCreatePreferences returns the user's preferences, creating the row
// with defaults on first access.
func (r *notificationRepository) FindOrCreatePreferences(ctx context.Context, userID string) (*entity.UserPreferences, error) {
	var prefs entity.UserPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = entity.UserPreferences{
			UserID:                    userID,
			MorningAlertsEnabled:      true,
			AfternoonAlertsEnabled:    true,
			PushNotificationsEnabled:  true,
			EmailNotificationsEnabled: true,
		}
		if err := r.db.WithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences persists updated preference toggles.
func (r *notificationRepository) SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

package dto

// Notification action types accepted by the notifications endpoint.
const (
	NotificationActionSend              = "send_notification"
	NotificationActionUpdatePreferences = "update_preferences"
	NotificationActionMarkAsRead        = "mark_as_read"
)

// NotificationRequest is the action-typed POST body for notifications.
type NotificationRequest struct {
	Type                     string `json:"type"`
	UserID                   string `json:"user_id"`
	Title                    string `json:"title"`
	Message                  string `json:"message"`
	PushNotificationsEnabled *bool  `json:"push_notifications_enabled"`
	MorningAlertsEnabled     *bool  `json:"morning_alerts_enabled"`
	AfternoonAlertsEnabled   *bool  `json:"afternoon_alerts_enabled"`
	NotificationID           *uint  `json:"notification_id"`
}

// NotificationDTO is one history entry.
type NotificationDTO struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	Message          string `json:"message"`
	NotificationType string `json:"notification_type"`
	SentAt           string `json:"sent_at,omitempty"`
	ReadAt           string `json:"read_at,omitempty"`
}

// PreferencesDTO is the user's notification toggles.
type PreferencesDTO struct {
	PushNotificationsEnabled bool `json:"push_notifications_enabled"`
	MorningAlertsEnabled     bool `json:"morning_alerts_enabled"`
	AfternoonAlertsEnabled   bool `json:"afternoon_alerts_enabled"`
}

// NotificationsResponse combines preferences with recent history.
type NotificationsResponse struct {
	Preferences PreferencesDTO    `json:"preferences"`
	History     []NotificationDTO `json:"history"`
}

package common

const (
	RedisStreamRecommendationEvents = "market.recommendation.events"
	RedisKeyLatestAnalysis          = "market.analysis.latest"

	DefaultUserID = "default_user"

	AlertSlotMorning   = "10_AM"
	AlertSlotAfternoon = "2_PM"

	NotificationTypeStockRecommendation = "stock_recommendation"
)

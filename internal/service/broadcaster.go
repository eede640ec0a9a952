package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSurvey(surveyID string, msgType string, payload interface{})
	HasSubscribers(surveyID string) bool
}

// Message types pushed to survey dashboards
const (
	MsgResponseSubmitted = "response_submitted"
	MsgAnalyticsUpdate   = "analytics_update"
)

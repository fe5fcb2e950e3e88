package types

type CreateFeedbackRequest struct {
	ChatID       string `json:"chatId"`
	Category     string `json:"category,omitempty"`
	FeedbackText string `json:"feedbackText"`
	Stars        int    `json:"stars"`
}

package types

import "github.com/teamcbatch1/conceptclarity/server/sources/psql/models"

type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
}

type SendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type SendMessageResponse struct {
	UserMessage *models.Message `json:"userMessage"`
	BotMessage  *models.Message `json:"botMessage"`
	Reply       string          `json:"reply"`
}

package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/services/sentiment"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/dao"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

// Replier produces the bot reply text; always returns a usable string.
type Replier interface {
	Respond(ctx context.Context, text string) string
}

// Titler names a chat after its first message.
type Titler interface {
	GenerateChatTitle(ctx context.Context, firstMessage string) string
}

// ChatSentiment classifies user chat messages when enabled by config.
type ChatSentiment interface {
	Analyze(ctx context.Context, text string) sentiment.Result
}

type ChatController struct {
	chatDAO    *dao.ChatDAO
	messageDAO *dao.MessageDAO
	replier    Replier
	titler     Titler
	analyzer   ChatSentiment

	// analyzeChatSentiment mirrors ANALYZE_CHAT_SENTIMENT. Off, user chat
	// messages are stored "neutral" without calling the classifier; feedback
	// sentiment is unaffected either way.
	analyzeChatSentiment bool
}

func NewChatController(chatDAO *dao.ChatDAO, messageDAO *dao.MessageDAO, replier Replier, titler Titler, analyzer ChatSentiment, analyzeChatSentiment bool) *ChatController {
	return &ChatController{
		chatDAO:              chatDAO,
		messageDAO:           messageDAO,
		replier:              replier,
		titler:               titler,
		analyzer:             analyzer,
		analyzeChatSentiment: analyzeChatSentiment,
	}
}

func (c *ChatController) CreateChat(ctx context.Context, userID int, title string) (*models.Chat, error) {
	return c.chatDAO.CreateChat(ctx, userID, title)
}

// SendMessage runs one request/response exchange: persist the user message,
// produce the bot reply, persist it, and title the chat on the first
// exchange. The reply is always a string; pipeline failures degrade inside
// the responder.
func (c *ChatController) SendMessage(ctx context.Context, userID int, req types.SendMessageRequest) (*types.SendMessageResponse, error) {
	if req.ChatID == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: chatId and message required", ErrBadRequest)
	}
	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chatId", ErrBadRequest)
	}

	chat, err := c.ownedChat(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	messageCount, err := c.messageDAO.CountByChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	isFirstMessage := messageCount == 0

	userSentiment := models.MessageSentimentNeutral
	if c.analyzeChatSentiment && c.analyzer != nil {
		// Message rows store the label lowercase; only Feedback keeps the
		// classifier's capitalized form.
		result := c.analyzer.Analyze(ctx, req.Message)
		userSentiment = strings.ToLower(result.Label)
	}

	userMsg, err := c.messageDAO.SaveMessage(ctx, chatID, models.SenderUser, req.Message, userSentiment)
	if err != nil {
		return nil, err
	}

	reply := c.replier.Respond(ctx, req.Message)

	botMsg, err := c.messageDAO.SaveMessage(ctx, chatID, models.SenderBot, reply, models.MessageSentimentNeutral)
	if err != nil {
		return nil, err
	}

	if isFirstMessage {
		title := c.titler.GenerateChatTitle(ctx, req.Message)
		if err := c.chatDAO.UpdateTitle(ctx, chat.ID, title); err != nil {
			logging.ErrorLogger.Error("chat title update failed",
				zap.String("chat_id", chat.ID.String()), zap.Error(err))
		}
	}

	return &types.SendMessageResponse{
		UserMessage: userMsg,
		BotMessage:  botMsg,
		Reply:       reply,
	}, nil
}

func (c *ChatController) GetChats(ctx context.Context, userID int) ([]models.Chat, error) {
	return c.chatDAO.GetChatsByUser(ctx, userID)
}

func (c *ChatController) GetMessages(ctx context.Context, userID int, chatID uuid.UUID) ([]models.Message, error) {
	if _, err := c.ownedChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return c.messageDAO.GetMessagesByChat(ctx, chatID)
}

func (c *ChatController) DeleteChat(ctx context.Context, userID int, chatID uuid.UUID) error {
	if _, err := c.ownedChat(ctx, userID, chatID); err != nil {
		return err
	}
	return c.chatDAO.DeleteChat(ctx, chatID)
}

func (c *ChatController) ownedChat(ctx context.Context, userID int, chatID uuid.UUID) (*models.Chat, error) {
	chat, err := c.chatDAO.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || chat.UserID != userID {
		return nil, fmt.Errorf("%w: Chat not found or unauthorized", ErrForbidden)
	}
	return chat, nil
}

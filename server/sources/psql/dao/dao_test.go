package dao

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teamcbatch1/conceptclarity/server/sources/psql"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	if err := NewUserDAO(db).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestUserDAOIdentifierLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "alice", models.RoleUser)
	userDAO := NewUserDAO(db)

	byEmail, err := userDAO.GetUserByIdentifier(ctx, "alice@example.com")
	if err != nil || byEmail == nil || byEmail.ID != user.ID {
		t.Fatalf("lookup by email: %v %v", byEmail, err)
	}
	byName, err := userDAO.GetUserByIdentifier(ctx, "alice")
	if err != nil || byName == nil || byName.ID != user.ID {
		t.Fatalf("lookup by username: %v %v", byName, err)
	}
	missing, err := userDAO.GetUserByIdentifier(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("missing identifier should be nil, nil; got %v %v", missing, err)
	}
}

func TestAdminExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	userDAO := NewUserDAO(db)

	exists, err := userDAO.AdminExists(ctx)
	if err != nil || exists {
		t.Fatalf("AdminExists on empty table = %v, %v", exists, err)
	}
	createTestUser(t, db, "root", models.RoleAdmin)
	exists, err = userDAO.AdminExists(ctx)
	if err != nil || !exists {
		t.Fatalf("AdminExists after admin insert = %v, %v", exists, err)
	}
}

func TestChatDeleteCascadesMessages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "bob", models.RoleUser)
	chatDAO := NewChatDAO(db)
	messageDAO := NewMessageDAO(db)

	chat, err := chatDAO.CreateChat(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	if chat.Title != models.DefaultChatTitle {
		t.Errorf("default title = %q", chat.Title)
	}

	if _, err := messageDAO.SaveMessage(ctx, chat.ID, models.SenderUser, "hi", models.MessageSentimentNeutral); err != nil {
		t.Fatalf("save message: %v", err)
	}
	if _, err := messageDAO.SaveMessage(ctx, chat.ID, models.SenderBot, "hello", models.MessageSentimentNeutral); err != nil {
		t.Fatalf("save message: %v", err)
	}

	if err := chatDAO.DeleteChat(ctx, chat.ID); err != nil {
		t.Fatalf("delete chat: %v", err)
	}

	count, err := messageDAO.CountByChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("messages left after chat delete: %d", count)
	}
	gone, err := chatDAO.GetChatByID(ctx, chat.ID)
	if err != nil || gone != nil {
		t.Errorf("chat still present after delete: %v %v", gone, err)
	}
}

func TestMessagesReturnedInOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "carol", models.RoleUser)
	chatDAO := NewChatDAO(db)
	messageDAO := NewMessageDAO(db)

	chat, err := chatDAO.CreateChat(ctx, user.ID, "Ordering")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}
	for _, text := range []string{"first", "second", "third"} {
		if _, err := messageDAO.SaveMessage(ctx, chat.ID, models.SenderUser, text, models.MessageSentimentNeutral); err != nil {
			t.Fatalf("save %q: %v", text, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	messages, err := messageDAO.GetMessagesByChat(ctx, chat.ID)
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("len(messages) = %d", len(messages))
	}
	for i, want := range []string{"first", "second", "third"} {
		if messages[i].Message != want {
			t.Errorf("messages[%d] = %q, want %q", i, messages[i].Message, want)
		}
	}
}

func TestFeedbackStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "dave", models.RoleUser)
	chatDAO := NewChatDAO(db)
	feedbackDAO := NewFeedbackDAO(db)

	chat, err := chatDAO.CreateChat(ctx, user.ID, "Stats")
	if err != nil {
		t.Fatalf("create chat: %v", err)
	}

	for _, fb := range []struct {
		label string
		stars int
	}{
		{"Positive", 5},
		{"Positive", 4},
		{"Negative", 1},
		{"Neutral", 2},
	} {
		err := feedbackDAO.CreateFeedback(ctx, &models.Feedback{
			UserID:         user.ID,
			UserEmail:      user.Email,
			ChatID:         chat.ID,
			ChatName:       chat.Title,
			Category:       models.FeedbackCategoryResponseQuality,
			FeedbackText:   "text",
			Stars:          fb.stars,
			SentimentLabel: fb.label,
			SentimentScore: 0.8,
		})
		if err != nil {
			t.Fatalf("create feedback: %v", err)
		}
	}

	stats, err := feedbackDAO.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalFeedbacks != 4 || stats.PositiveFeedbacks != 2 ||
		stats.NeutralFeedbacks != 1 || stats.NegativeFeedbacks != 1 {
		t.Errorf("stats counts = %+v", stats)
	}
	if stats.AvgStars != 3.0 {
		t.Errorf("AvgStars = %v, want 3.0", stats.AvgStars)
	}
}

func TestTicketStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "erin", models.RoleUser)
	ticketDAO := NewTicketDAO(db)

	for _, status := range []string{
		models.TicketStatusPending,
		models.TicketStatusPending,
		models.TicketStatusActive,
		models.TicketStatusResolved,
	} {
		err := ticketDAO.CreateTicket(ctx, &models.Ticket{
			UserID:      user.ID,
			Subject:     "s",
			Category:    "c",
			Description: "d",
			Status:      status,
			Priority:    models.TicketPriorityMedium,
		})
		if err != nil {
			t.Fatalf("create ticket: %v", err)
		}
	}

	stats, err := ticketDAO.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Pending != 2 || stats.Active != 1 || stats.Resolved != 1 || stats.Total != 4 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestNotificationUnreadCounts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "frank", models.RoleUser)
	other := createTestUser(t, db, "grace", models.RoleUser)
	notificationDAO := NewNotificationDAO(db)

	err := notificationDAO.CreateNotifications(ctx, []models.Notification{
		{UserID: user.ID, Type: models.NotificationFeatureUpdate, Title: "a", Message: "m"},
		{UserID: user.ID, Type: models.NotificationFeatureUpdate, Title: "b", Message: "m"},
		{UserID: other.ID, Type: models.NotificationFeatureUpdate, Title: "c", Message: "m"},
	})
	if err != nil {
		t.Fatalf("create notifications: %v", err)
	}

	count, err := notificationDAO.UnreadCount(ctx, user.ID)
	if err != nil || count != 2 {
		t.Fatalf("UnreadCount = %d, %v; want 2", count, err)
	}

	list, err := notificationDAO.GetNotificationsByUser(ctx, user.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("GetNotificationsByUser = %d items, %v", len(list), err)
	}

	if err := notificationDAO.MarkRead(ctx, list[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	count, err = notificationDAO.UnreadCount(ctx, user.ID)
	if err != nil || count != 1 {
		t.Fatalf("UnreadCount after MarkRead = %d, %v; want 1", count, err)
	}

	if err := notificationDAO.MarkAllRead(ctx, user.ID); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	count, err = notificationDAO.UnreadCount(ctx, user.ID)
	if err != nil || count != 0 {
		t.Fatalf("UnreadCount after MarkAllRead = %d, %v; want 0", count, err)
	}

	// The other user's notification is untouched.
	count, err = notificationDAO.UnreadCount(ctx, other.ID)
	if err != nil || count != 1 {
		t.Fatalf("other user's UnreadCount = %d, %v; want 1", count, err)
	}
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "henry", models.RoleUser)
	resetDAO := NewPasswordResetDAO(db)

	token, err := resetDAO.CreateResetToken(ctx, user.ID)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}

	record, err := resetDAO.VerifyResetToken(ctx, token)
	if err != nil || record == nil {
		t.Fatalf("verify fresh token: %v %v", record, err)
	}
	if record.UserID != user.ID {
		t.Errorf("record.UserID = %d", record.UserID)
	}
	if record.TokenHash == token {
		t.Error("raw token stored instead of its hash")
	}

	if rec, err := resetDAO.VerifyResetToken(ctx, "deadbeef"); err != nil || rec != nil {
		t.Errorf("unknown token should verify to nil, nil; got %v %v", rec, err)
	}
}

func TestPasswordResetTokenReplacedAndExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "iris", models.RoleUser)
	resetDAO := NewPasswordResetDAO(db)

	first, err := resetDAO.CreateResetToken(ctx, user.ID)
	if err != nil {
		t.Fatalf("create first token: %v", err)
	}
	second, err := resetDAO.CreateResetToken(ctx, user.ID)
	if err != nil {
		t.Fatalf("create second token: %v", err)
	}

	if rec, err := resetDAO.VerifyResetToken(ctx, first); err != nil || rec != nil {
		t.Errorf("replaced token should be invalid; got %v %v", rec, err)
	}
	rec, err := resetDAO.VerifyResetToken(ctx, second)
	if err != nil || rec == nil {
		t.Fatalf("second token should verify: %v %v", rec, err)
	}

	// Age the record past its TTL.
	err = db.Model(&models.PasswordReset{}).
		Where("id = ?", rec.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	if err != nil {
		t.Fatalf("age record: %v", err)
	}
	if rec, err := resetDAO.VerifyResetToken(ctx, second); err != nil || rec != nil {
		t.Errorf("expired token should verify to nil, nil; got %v %v", rec, err)
	}
}

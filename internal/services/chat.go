package services

import (
	"strings"
	"time"

	"github.com/lakshmanbhukya/threadly-backend/internal/database"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/pkg/errors"
)

// FindOrCreateDirect returns the direct conversation for the pair, creating it
// on first contact. The unique DirectKey index resolves concurrent creation:
// the loser of the race re-reads the winner's row.
func FindOrCreateDirect(userA, userB string) (*models.Conversation, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, errors.BadRequest("Participant id is required")
	}
	if userA == userB {
		return nil, errors.BadRequest("Cannot start a conversation with yourself")
	}

	key := models.DirectKeyFor(userA, userB)

	var conversation models.Conversation
	err := database.DB.Preload("Participants").Preload("LastMessage").
		Where("direct_key = ?", key).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}

	var participants []models.User
	if err := database.DB.Where("id IN ?", []string{userA, userB}).Find(&participants).Error; err != nil {
		return nil, err
	}
	if len(participants) != 2 {
		return nil, errors.NotFound("Participant not found")
	}

	conversation = models.Conversation{
		Type:         models.ConversationDirect,
		DirectKey:    key,
		Participants: participants,
		LastActivity: time.Now(),
	}

	if err := database.DB.Create(&conversation).Error; err != nil {
		// Unique violation on DirectKey: another request created the pair
		// between our lookup and insert. Their row wins.
		var existing models.Conversation
		if ferr := database.DB.Preload("Participants").Preload("LastMessage").
			Where("direct_key = ?", key).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}

	return &conversation, nil
}

// ListConversations returns the user's conversations, most recently active first.
func ListConversations(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := database.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Preload("LastMessage").
		Order("last_activity desc").
		Find(&conversations).Error
	return conversations, err
}

func findConversationFor(conversationID, userID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := database.DB.Preload("Participants").
		First(&conversation, "id = ?", conversationID).Error; err != nil {
		return nil, errors.NotFound("Conversation not found")
	}
	// Non-participants get the same answer as a missing conversation.
	if !conversation.HasParticipant(userID) {
		return nil, errors.NotFound("Conversation not found")
	}
	return &conversation, nil
}

// AppendMessage persists a message from sender into the conversation and
// advances the conversation's last-message pointer and activity timestamp.
// The returned message carries the populated sender.
func AppendMessage(conversationID, senderID, content string, messageType models.MessageType) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content is required")
	}
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	conversation, err := findConversationFor(conversationID, senderID)
	if err != nil {
		return nil, err
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        content,
		Type:           messageType,
		CreatedAt:      time.Now(),
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return nil, err
	}

	// Pointer update is a separate write. A crash in between leaves the
	// conversation pointing at the previous message until the next send,
	// which self-heals.
	updates := map[string]interface{}{
		"last_message_id": message.ID,
		"last_activity":   message.CreatedAt,
	}
	if err := database.DB.Model(&models.Conversation{}).
		Where("id = ?", conversation.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Preload("Sender").First(&message, "id = ?", message.ID).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// ListMessages returns a page of the conversation's messages in creation order.
func ListMessages(conversationID, requesterID string, page, limit int) ([]models.Message, error) {
	if _, err := findConversationFor(conversationID, requesterID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var messages []models.Message
	err := database.DB.
		Where("conversation_id = ?", conversationID).
		Preload("Sender").
		Preload("ReadBy").
		Order("created_at asc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&messages).Error
	return messages, err
}

// MarkConversationRead appends a read receipt for every message the reader has
// not sent and not already read. Repeated calls are no-ops for messages that
// already carry the reader's receipt, so the operation is idempotent. The
// receipts created by this call are returned for broadcast.
func MarkConversationRead(conversationID, readerID string) ([]models.MessageReceipt, error) {
	if _, err := findConversationFor(conversationID, readerID); err != nil {
		return nil, err
	}

	var unread []models.Message
	err := database.DB.
		Where("conversation_id = ? AND sender_id <> ?", conversationID, readerID).
		Where("id NOT IN (?)", database.DB.Model(&models.MessageReceipt{}).
			Select("message_id").Where("user_id = ?", readerID)).
		Find(&unread).Error
	if err != nil {
		return nil, err
	}

	if len(unread) == 0 {
		return nil, nil
	}

	now := time.Now()
	receipts := make([]models.MessageReceipt, 0, len(unread))
	for _, message := range unread {
		receipts = append(receipts, models.MessageReceipt{
			MessageID: message.ID,
			UserID:    readerID,
			ReadAt:    now,
		})
	}
	if err := database.DB.Create(&receipts).Error; err != nil {
		return nil, err
	}

	return receipts, nil
}

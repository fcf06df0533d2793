package repositories

import (
	"errors"
	"time"

	"agrihub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
)

type ChatRepository interface {
	CreateConversation(conv *models.Conversation) error
	FindConversationByID(id string) (*models.Conversation, error)
	FindConversationBetween(userA, userB string) (*models.Conversation, error)
	FindConversationsByUser(userID string) ([]models.Conversation, error)

	CreateMessage(msg *models.Message) error
	FindMessages(conversationID string, page, pageSize int) ([]models.Message, int64, error)
	MarkRead(conversationID, readerID string) error
	CountUnread(conversationID, readerID string) (int64, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) CreateConversation(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *ChatRepositoryImpl) FindConversationByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) FindConversationBetween(userA, userB string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Where(
		"(participant_one = ? AND participant_two = ?) OR (participant_one = ? AND participant_two = ?)",
		userA, userB, userB, userA,
	).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ChatRepositoryImpl) FindConversationsByUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("participant_one = ? OR participant_two = ?", userID, userID).
		Order("updated_at DESC").Find(&convs).Error
	return convs, err
}

func (r *ChatRepositoryImpl) CreateMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *ChatRepositoryImpl) FindMessages(conversationID string, page, pageSize int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	var messages []models.Message
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead stamps every unread counterparty message in the thread.
func (r *ChatRepositoryImpl) MarkRead(conversationID, readerID string) error {
	return r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", time.Now()).Error
}

func (r *ChatRepositoryImpl) CountUnread(conversationID, readerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL", conversationID, readerID).
		Count(&count).Error
	return count, err
}

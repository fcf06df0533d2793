package services

import (
	"agrihub_backend/internal/models"
	"agrihub_backend/internal/repositories"
	"agrihub_backend/internal/services/dto"
	"agrihub_backend/pkg/apperrors"
)

type ChatService interface {
	OpenConversation(userID string, req *dto.OpenConversationRequest) (*models.Conversation, error)
	SendMessage(senderID string, req *dto.SendMessageRequest) (*models.Message, error)
	ListConversations(userID string) ([]dto.ConversationDTO, error)
	ListMessages(userID, conversationID string, page, pageSize int) (*dto.MessageListResponse, error)
	MarkRead(userID, conversationID string) error
	UnreadCount(userID, conversationID string) (int64, error)
}

type ChatServiceImpl struct {
	chatRepo repositories.ChatRepository
	userRepo repositories.UserRepository
}

func NewChatService(chatRepo repositories.ChatRepository, userRepo repositories.UserRepository) ChatService {
	return &ChatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// OpenConversation returns the existing thread between the two users
// or creates one.
func (s *ChatServiceImpl) OpenConversation(userID string, req *dto.OpenConversationRequest) (*models.Conversation, error) {
	if req.UserID == userID {
		return nil, apperrors.ErrInvalidOperation("chat", "Cannot open a conversation with yourself")
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	existing, err := s.chatRepo.FindConversationBetween(userID, req.UserID)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, repositories.ErrConversationNotFound) {
		return nil, apperrors.UnavailableError(err)
	}

	conv := &models.Conversation{
		BookingID:      req.BookingID,
		ParticipantOne: userID,
		ParticipantTwo: req.UserID,
	}

	if err := s.chatRepo.CreateConversation(conv); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return conv, nil
}

func (s *ChatServiceImpl) SendMessage(senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	conv, err := s.participantConversation(senderID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Body:           req.Body,
	}

	if err := s.chatRepo.CreateMessage(msg); err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return msg, nil
}

func (s *ChatServiceImpl) ListConversations(userID string) ([]dto.ConversationDTO, error) {
	convs, err := s.chatRepo.FindConversationsByUser(userID)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	result := make([]dto.ConversationDTO, 0, len(convs))
	for i := range convs {
		unread, _ := s.chatRepo.CountUnread(convs[i].ID, userID)
		result = append(result, dto.ConversationDTO{
			ID:          convs[i].ID,
			BookingID:   convs[i].BookingID,
			PartnerID:   convs[i].OtherParticipant(userID),
			UnreadCount: unread,
		})
	}

	return result, nil
}

func (s *ChatServiceImpl) ListMessages(userID, conversationID string, page, pageSize int) (*dto.MessageListResponse, error) {
	if _, err := s.participantConversation(userID, conversationID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.FindMessages(conversationID, page, pageSize)
	if err != nil {
		return nil, apperrors.UnavailableError(err)
	}

	return &dto.MessageListResponse{
		Messages: messages,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *ChatServiceImpl) MarkRead(userID, conversationID string) error {
	if _, err := s.participantConversation(userID, conversationID); err != nil {
		return err
	}

	if err := s.chatRepo.MarkRead(conversationID, userID); err != nil {
		return apperrors.UnavailableError(err)
	}
	return nil
}

func (s *ChatServiceImpl) UnreadCount(userID, conversationID string) (int64, error) {
	if _, err := s.participantConversation(userID, conversationID); err != nil {
		return 0, err
	}

	count, err := s.chatRepo.CountUnread(conversationID, userID)
	if err != nil {
		return 0, apperrors.UnavailableError(err)
	}
	return count, nil
}

// participantConversation loads the conversation and ensures the user
// belongs to it.
func (s *ChatServiceImpl) participantConversation(userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.UnavailableError(err)
	}

	if !conv.HasParticipant(userID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return conv, nil
}

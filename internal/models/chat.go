package models

import "time"

// Conversation is a two-party message thread, optionally tied to a
// booking.
type Conversation struct {
	BaseModel
	BookingID      *string `gorm:"index"`
	ParticipantOne string  `gorm:"not null;index"`
	ParticipantTwo string  `gorm:"not null;index"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.ParticipantOne == userID || c.ParticipantTwo == userID
}

// OtherParticipant returns the counterparty of the given user.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.ParticipantOne == userID {
		return c.ParticipantTwo
	}
	return c.ParticipantOne
}

type Message struct {
	BaseModel
	ConversationID string     `gorm:"not null;index"`
	SenderID       string     `gorm:"not null;index"`
	Body           string     `gorm:"not null"`
	ReadAt         *time.Time
}

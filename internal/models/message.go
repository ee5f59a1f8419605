package models

import (
	"time"
)

// Message is the only persisted entity of the messaging subsystem. Rows are
// hard-deleted; content is immutable after create and read_at is the single
// mutable column (nil = unread, set exactly once).
type Message struct {
	ID uint `gorm:"primarykey" json:"id"`

	// Client-side tracking
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_client_sender;not null" json:"client_id"` // UUID for deduplication

	SenderID   uint  `gorm:"not null;uniqueIndex:idx_client_sender;index:idx_pair" json:"sender_id"`
	Sender     *User `gorm:"foreignKey:SenderID" json:"sender"`
	ReceiverID uint  `gorm:"not null;index:idx_pair;index:idx_unread" json:"receiver_id"`
	Receiver   *User `gorm:"foreignKey:ReceiverID" json:"receiver"`

	Content string `gorm:"type:text;not null" json:"content"`

	SentAt time.Time  `gorm:"not null;index" json:"sent_at"`
	ReadAt *time.Time `gorm:"index:idx_unread" json:"read_at"`
}

type MessageResponse struct {
	ID         uint          `json:"id"`
	ClientID   string        `json:"client_id"`
	SenderID   uint          `json:"sender_id"`
	Sender     *UserResponse `json:"sender"`
	ReceiverID uint          `json:"receiver_id"`
	Receiver   *UserResponse `json:"receiver"`
	Content    string        `json:"content"`
	SentAt     time.Time     `json:"sent_at"`
	ReadAt     *time.Time    `json:"read_at"`
}

func (m *Message) ToResponse() MessageResponse {
	resp := MessageResponse{
		ID:         m.ID,
		ClientID:   m.ClientID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		SentAt:     m.SentAt,
		ReadAt:     m.ReadAt,
	}
	// Deleted accounts leave the profile null rather than a zero-value user.
	if m.Sender != nil && m.Sender.ID != 0 {
		s := m.Sender.ToResponse()
		resp.Sender = &s
	}
	if m.Receiver != nil && m.Receiver.ID != 0 {
		r := m.Receiver.ToResponse()
		resp.Receiver = &r
	}
	return resp
}

// IsRead reports whether the read marker has been set.
func (m *Message) IsRead() bool {
	return m.ReadAt != nil
}

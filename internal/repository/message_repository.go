package repository

import (
	"time"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Receiver").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) FindByClientID(clientID string, senderID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("client_id = ? AND sender_id = ?", clientID, senderID).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindThread returns one page of the conversation between two users in
// chronological order. Equal sent_at values are ordered by id so pagination
// is stable.
func (r *MessageRepository) FindThread(userID, peerID uint, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("sent_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) CountThread(userID, peerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Count(&count).Error
	return count, err
}

// MarkThreadRead stamps every unread message from peer to user in one
// conditional update. The read_at IS NULL predicate makes concurrent calls
// converge: rows already stamped are never touched again.
func (r *MessageRepository) MarkThreadRead(userID, peerID uint) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", peerID, userID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

// MarkMessageRead stamps a single unread message. Same conditional shape as
// MarkThreadRead so a second call is a no-op.
func (r *MessageRepository) MarkMessageRead(id uint) (int64, error) {
	res := r.db.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

// Delete removes a row unconditionally; authorization is the caller's
// responsibility.
func (r *MessageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}

// ListOwn returns every message the user sent or received, newest first.
func (r *MessageRepository) ListOwn(userID uint, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("sent_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) CountOwn(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// ListAll returns every message in the store, newest first. Admin oversight
// only; the gate is enforced upstream.
func (r *MessageRepository) ListAll(offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("Sender").Preload("Receiver").
		Order("sent_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}

// PeerActivity is one row of the conversation grouping: a counterpart and the
// time of the latest message exchanged with them.
type PeerActivity struct {
	PeerID   uint      `gorm:"column:peer_id"`
	LastTime time.Time `gorm:"column:last_time"`
}

// ListPeerActivity groups the user's messages by counterpart and takes the
// latest sent_at per group.
func (r *MessageRepository) ListPeerActivity(userID uint) ([]PeerActivity, error) {
	var rows []PeerActivity
	err := r.db.Raw(`
SELECT
	CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END AS peer_id,
	MAX(m.sent_at) AS last_time
FROM messages m
WHERE m.sender_id = ? OR m.receiver_id = ?
GROUP BY peer_id
ORDER BY last_time DESC, peer_id ASC
`, userID, userID, userID).Scan(&rows).Error
	return rows, err
}

// UnreadCount is the number of unread messages a specific sender has pending
// for the user.
type UnreadCount struct {
	SenderID uint  `gorm:"column:sender_id"`
	Count    int64 `gorm:"column:count"`
}

// CountUnreadBySender counts unread messages addressed to the user, grouped
// by who sent them. Messages the user sent never appear here.
func (r *MessageRepository) CountUnreadBySender(userID uint) ([]UnreadCount, error) {
	var rows []UnreadCount
	err := r.db.Raw(`
SELECT m.sender_id AS sender_id, COUNT(*) AS count
FROM messages m
WHERE m.receiver_id = ? AND m.read_at IS NULL
GROUP BY m.sender_id
`, userID).Scan(&rows).Error
	return rows, err
}

package repository

import (
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
)

// MessageRepositoryInterface defines the contract for message store operations
type MessageRepositoryInterface interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	FindByClientID(clientID string, senderID uint) (*models.Message, error)
	FindThread(userID, peerID uint, offset, limit int) ([]models.Message, error)
	CountThread(userID, peerID uint) (int64, error)
	MarkThreadRead(userID, peerID uint) (int64, error)
	MarkMessageRead(id uint) (int64, error)
	Delete(id uint) error
	ListOwn(userID uint, offset, limit int) ([]models.Message, error)
	CountOwn(userID uint) (int64, error)
	ListAll(offset, limit int) ([]models.Message, error)
	CountAll() (int64, error)
	ListPeerActivity(userID uint) ([]PeerActivity, error)
	CountUnreadBySender(userID uint) ([]UnreadCount, error)
}

// UserRepositoryInterface defines the contract for directory lookups
type UserRepositoryInterface interface {
	FindByID(id uint) (*models.User, error)
	FindByIDs(ids []uint) ([]models.User, error)
	Exists(id uint) (bool, error)
}

package models

import (
	"time"
)

// ConversationEntry is a computed summary of one peer relationship. It is
// never persisted; the aggregator derives it from messages at query time.
// Peer is nil when the counterpart account no longer exists in the directory,
// so history survives account deletion.
type ConversationEntry struct {
	Peer     *UserResponse `json:"peer"`
	PeerID   uint          `json:"peer_id"`
	LastTime time.Time     `json:"last_time"`
	Unread   int64         `json:"unread"`
}

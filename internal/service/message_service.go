package service

import (
	"errors"
	"sort"
	"time"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/apperr"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/cache"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/policy"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/repository"
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultThreadPageSize = 20
	DefaultListPageSize   = 50
	MaxPageSize           = 100
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
	userRepo    repository.UserRepositoryInterface
	profiles    *cache.ProfileCache
}

func NewMessageService(
	messageRepo repository.MessageRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	profiles *cache.ProfileCache,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		profiles:    profiles,
	}
}

type SendMessageInput struct {
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
	ClientID   string `json:"client_id"`
}

// MessagePage is one page of messages plus enough metadata for the caller to
// compute total pages.
type MessagePage struct {
	Messages []models.Message `json:"messages"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Send validates and persists one outbound message. Nothing is written when
// validation fails. Resending with the same client_id returns the original
// row instead of inserting a duplicate.
//
// Self-messaging (receiver == sender) is deliberately not rejected; the
// upstream application permits it.
func (s *MessageService) Send(senderID uint, input SendMessageInput) (*models.Message, error) {
	content := validation.NormalizeContent(input.Content)
	if content == "" {
		return nil, apperr.Validation("missing_content", "Content is required")
	}
	if input.ReceiverID == 0 {
		return nil, apperr.Validation("missing_receiver", "receiver_id is required")
	}

	exists, err := s.userRepo.Exists(input.ReceiverID)
	if err != nil {
		return nil, apperr.Storage("receiver_lookup_failed", err)
	}
	if !exists {
		return nil, apperr.Validation("receiver_not_found", "Receiver does not exist")
	}

	clientID := input.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	} else {
		existing, err := s.messageRepo.FindByClientID(clientID, senderID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Storage("send_message_failed", err)
		}
	}

	message := &models.Message{
		ClientID:   clientID,
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    content,
		SentAt:     time.Now(),
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperr.Storage("send_message_failed", err)
	}

	// Reload with sender/receiver resolved for immediate display.
	created, err := s.messageRepo.FindByID(message.ID)
	if err != nil {
		return nil, apperr.Storage("send_message_failed", err)
	}
	return created, nil
}

// Conversations derives the ordered conversation list for one user: one
// entry per counterpart with last activity and unread count. Peers whose
// directory entry is gone are kept with a nil profile.
func (s *MessageService) Conversations(userID uint) ([]models.ConversationEntry, error) {
	activity, err := s.messageRepo.ListPeerActivity(userID)
	if err != nil {
		return nil, apperr.Storage("list_conversations_failed", err)
	}

	unreadRows, err := s.messageRepo.CountUnreadBySender(userID)
	if err != nil {
		return nil, apperr.Storage("list_conversations_failed", err)
	}
	unread := make(map[uint]int64, len(unreadRows))
	for _, row := range unreadRows {
		unread[row.SenderID] = row.Count
	}

	peerIDs := make([]uint, 0, len(activity))
	for _, a := range activity {
		peerIDs = append(peerIDs, a.PeerID)
	}
	profiles, err := s.resolveProfiles(peerIDs)
	if err != nil {
		return nil, apperr.Storage("list_conversations_failed", err)
	}

	entries := make([]models.ConversationEntry, 0, len(activity))
	for _, a := range activity {
		entry := models.ConversationEntry{
			PeerID:   a.PeerID,
			LastTime: a.LastTime,
			Unread:   unread[a.PeerID],
		}
		if user, ok := profiles[a.PeerID]; ok {
			resp := user.ToResponse()
			entry.Peer = &resp
		}
		entries = append(entries, entry)
	}

	// Newest activity first; peer id breaks sent_at ties deterministically.
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].LastTime.Equal(entries[j].LastTime) {
			return entries[i].LastTime.After(entries[j].LastTime)
		}
		return entries[i].PeerID < entries[j].PeerID
	})

	return entries, nil
}

// Thread returns one chronological page of the conversation with peerID and
// stamps the user's entire unread backlog from that peer as read. The
// stamping is intentionally not limited to the fetched page: viewing any
// portion of a thread clears every pending unread indicator for that peer.
func (s *MessageService) Thread(userID, peerID uint, page, pageSize int) (*MessagePage, error) {
	page, pageSize = normalizePage(page, pageSize, DefaultThreadPageSize)

	total, err := s.messageRepo.CountThread(userID, peerID)
	if err != nil {
		return nil, apperr.Storage("fetch_thread_failed", err)
	}

	messages, err := s.messageRepo.FindThread(userID, peerID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Storage("fetch_thread_failed", err)
	}

	if _, err := s.messageRepo.MarkThreadRead(userID, peerID); err != nil {
		return nil, apperr.Storage("mark_read_failed", err)
	}

	return &MessagePage{
		Messages: messages,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// MarkThreadRead stamps every unread message from peerID to userID and
// returns how many rows changed. Calling it again immediately yields zero.
func (s *MessageService) MarkThreadRead(userID, peerID uint) (int64, error) {
	updated, err := s.messageRepo.MarkThreadRead(userID, peerID)
	if err != nil {
		return 0, apperr.Storage("mark_read_failed", err)
	}
	return updated, nil
}

// Get fetches one message for the actor. When the actor is the receiver and
// the message is still unread, it is marked read before being returned.
func (s *MessageService) Get(actor policy.Actor, id uint) (*models.Message, error) {
	message, err := s.findMessage(id)
	if err != nil {
		return nil, err
	}

	if !policy.Allow(actor, policy.ActionView, message) {
		return nil, apperr.Authorization("forbidden", "Not allowed to view this message")
	}

	if message.ReceiverID == actor.ID && !message.IsRead() {
		updated, err := s.messageRepo.MarkMessageRead(id)
		if err != nil {
			return nil, apperr.Storage("mark_read_failed", err)
		}
		if updated > 0 {
			// Reload so the response carries the stored timestamp.
			return s.findMessage(id)
		}
	}

	return message, nil
}

// Delete removes a message. Only the sender or an administrator may delete;
// receivers cannot remove what was sent to them.
func (s *MessageService) Delete(actor policy.Actor, id uint) error {
	message, err := s.findMessage(id)
	if err != nil {
		return err
	}

	if !policy.Allow(actor, policy.ActionDelete, message) {
		return apperr.Authorization("forbidden", "Not allowed to delete this message")
	}

	if err := s.messageRepo.Delete(id); err != nil {
		return apperr.Storage("delete_message_failed", err)
	}
	return nil
}

// ListOwn returns every message the user sent or received, newest first.
func (s *MessageService) ListOwn(userID uint, page, pageSize int) (*MessagePage, error) {
	page, pageSize = normalizePage(page, pageSize, DefaultListPageSize)

	total, err := s.messageRepo.CountOwn(userID)
	if err != nil {
		return nil, apperr.Storage("fetch_messages_failed", err)
	}
	messages, err := s.messageRepo.ListOwn(userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Storage("fetch_messages_failed", err)
	}

	return &MessagePage{Messages: messages, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListAll returns every message in the store, newest first. Administrators
// only.
func (s *MessageService) ListAll(actor policy.Actor, page, pageSize int) (*MessagePage, error) {
	if !policy.Allow(actor, policy.ActionListAll, nil) {
		return nil, apperr.Authorization("forbidden", "Administrator access required")
	}

	page, pageSize = normalizePage(page, pageSize, DefaultListPageSize)

	total, err := s.messageRepo.CountAll()
	if err != nil {
		return nil, apperr.Storage("fetch_messages_failed", err)
	}
	messages, err := s.messageRepo.ListAll((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Storage("fetch_messages_failed", err)
	}

	return &MessagePage{Messages: messages, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *MessageService) findMessage(id uint) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("message_not_found", "Message not found")
	}
	if err != nil {
		return nil, apperr.Storage("fetch_message_failed", err)
	}
	return message, nil
}

// resolveProfiles looks peer profiles up cache-first and backfills misses
// from the directory. Unknown ids are simply absent from the result.
func (s *MessageService) resolveProfiles(ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	var missing []uint
	for _, id := range ids {
		if user, ok := s.profiles.Get(id); ok {
			out[id] = *user
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		users, err := s.userRepo.FindByIDs(missing)
		if err != nil {
			return nil, err
		}
		for i := range users {
			out[users[i].ID] = users[i]
			_ = s.profiles.Set(&users[i])
		}
	}

	return out, nil
}

func normalizePage(page, pageSize, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

package policy

import (
	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
)

// Actor is the authenticated identity acting on a message. It is always
// passed explicitly; nothing in this package reads ambient state.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Action enumerates the operations the gate decides on.
type Action int

const (
	ActionView Action = iota + 1
	ActionMarkRead
	ActionDelete
	ActionListAll
)

// rule reports whether the actor may perform one action on the message.
// Admin override is handled once in Allow, not per rule.
type rule func(actor Actor, msg *models.Message) bool

var rules = map[Action]rule{
	ActionView:     participant,
	ActionMarkRead: participant,
	ActionDelete:   senderOnly,
	ActionListAll:  nobody,
}

func participant(actor Actor, msg *models.Message) bool {
	return msg != nil && (msg.SenderID == actor.ID || msg.ReceiverID == actor.ID)
}

func senderOnly(actor Actor, msg *models.Message) bool {
	return msg != nil && msg.SenderID == actor.ID
}

func nobody(Actor, *models.Message) bool {
	return false
}

// Allow decides whether actor may perform action on msg. msg is nil for
// actions that do not target a single message (ActionListAll).
func Allow(actor Actor, action Action, msg *models.Message) bool {
	if actor.IsAdmin() {
		return true
	}
	r, ok := rules[action]
	if !ok {
		return false
	}
	return r(actor, msg)
}

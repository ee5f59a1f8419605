package policy

import (
	"testing"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
)

func TestAllow(t *testing.T) {
	msg := &models.Message{ID: 1, SenderID: 10, ReceiverID: 20}

	sender := Actor{ID: 10, Role: models.RoleEmployee}
	receiver := Actor{ID: 20, Role: models.RoleEmployee}
	outsider := Actor{ID: 30, Role: models.RoleManager}
	admin := Actor{ID: 40, Role: models.RoleAdmin}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		msg    *models.Message
		want   bool
	}{
		{"sender views", sender, ActionView, msg, true},
		{"receiver views", receiver, ActionView, msg, true},
		{"outsider views", outsider, ActionView, msg, false},
		{"admin views", admin, ActionView, msg, true},

		{"sender marks read", sender, ActionMarkRead, msg, true},
		{"receiver marks read", receiver, ActionMarkRead, msg, true},
		{"outsider marks read", outsider, ActionMarkRead, msg, false},

		{"sender deletes", sender, ActionDelete, msg, true},
		{"receiver deletes", receiver, ActionDelete, msg, false},
		{"outsider deletes", outsider, ActionDelete, msg, false},
		{"admin deletes", admin, ActionDelete, msg, true},

		{"employee lists all", sender, ActionListAll, nil, false},
		{"manager lists all", outsider, ActionListAll, nil, false},
		{"admin lists all", admin, ActionListAll, nil, true},

		{"view with nil message", sender, ActionView, nil, false},
		{"unknown action", sender, Action(99), msg, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allow(tt.actor, tt.action, tt.msg); got != tt.want {
				t.Errorf("Allow(%+v, %v) = %v, want %v", tt.actor, tt.action, got, tt.want)
			}
		})
	}
}

func TestActorIsAdmin(t *testing.T) {
	if (Actor{ID: 1, Role: models.RoleManager}).IsAdmin() {
		t.Error("manager reported as admin")
	}
	if !(Actor{ID: 1, Role: models.RoleAdmin}).IsAdmin() {
		t.Error("admin not reported as admin")
	}
}

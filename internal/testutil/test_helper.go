package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"gorm.io/gorm"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a directory user with default values
func (h *TestHelper) CreateTestUser(id uint, name, role string) *models.User {
	if id == 0 {
		id = 1
	}
	if name == "" {
		name = "Test User"
	}
	if role == "" {
		role = models.RoleEmployee
	}

	return &models.User{
		ID:        id,
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		Position:  "Developer",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestMessage creates an unread message with default values
func (h *TestHelper) CreateTestMessage(id, senderID, receiverID uint, content string) *models.Message {
	if id == 0 {
		id = 1
	}
	if senderID == 0 {
		senderID = 1
	}
	if receiverID == 0 {
		receiverID = 2
	}
	if content == "" {
		content = "Test message"
	}

	return &models.Message{
		ID:         id,
		ClientID:   "client-" + string(rune('a'+id%26)),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		SentAt:     time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// GetRecordNotFoundError returns the error the store reports for a missing row
func GetRecordNotFoundError() error {
	return gorm.ErrRecordNotFound
}

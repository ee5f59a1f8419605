package cache

import (
	"fmt"
	"time"

	"github.com/elab-development/internet-tehnologije-2024-projekat-ticketingsystemapp-2021-0028/internal/models"
	"github.com/vmihailenco/msgpack/v5"
)

// ProfileTTL bounds directory staleness. Only profiles are cached; unread
// counts and conversation state always come from the store.
const ProfileTTL = 2 * time.Minute

// ProfileCache caches user directory entries for peer resolution.
type ProfileCache struct {
	redis *RedisCache
}

// NewProfileCache creates a new profile cache. A nil redis client disables
// caching entirely; every method degrades to a miss or a no-op.
func NewProfileCache(redis *RedisCache) *ProfileCache {
	return &ProfileCache{redis: redis}
}

func profileKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

// Get retrieves a cached directory profile.
func (pc *ProfileCache) Get(userID uint) (*models.User, bool) {
	if pc == nil || pc.redis == nil {
		return nil, false
	}
	data, err := pc.redis.Get(profileKey(userID))
	if err != nil || data == nil {
		return nil, false
	}

	var user models.User
	if err := msgpack.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set caches a directory profile.
func (pc *ProfileCache) Set(user *models.User) error {
	if pc == nil || pc.redis == nil || user == nil {
		return nil
	}
	data, err := msgpack.Marshal(user)
	if err != nil {
		return err
	}
	return pc.redis.Set(profileKey(user.ID), data, ProfileTTL)
}

// Invalidate removes a profile from the cache.
func (pc *ProfileCache) Invalidate(userID uint) error {
	if pc == nil || pc.redis == nil {
		return nil
	}
	return pc.redis.Delete(profileKey(userID))
}

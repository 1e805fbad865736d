package memory

import (
	"time"

	"shop-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps dialogue contexts in process memory. Sessions
// idle past the TTL are dropped; the next message starts a fresh one.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(sessionID string, sctx *store.Context) {
	r.cache.Set(sessionID, sctx, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Context, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Context), true
	}
	return nil, false
}

func (r *SessionRepository) GetOrCreate(sessionID string, user store.Identity) *store.Context {
	if sctx, found := r.Get(sessionID); found {
		return sctx
	}
	sctx := store.NewContext(user)
	sctx.SessionID = sessionID
	r.Save(sessionID, sctx)
	return sctx
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

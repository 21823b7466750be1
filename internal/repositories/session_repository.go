package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/anonto42/hooly/backend/internal/models"
)

// SessionRepository stores the live sessions opened by the connection layer
type SessionRepository interface {
	OpenSession(ctx context.Context, session models.OpenSession) error
	CloseSession(ctx context.Context, sessionID string) error
	ForMedia(ctx context.Context, mediaID string, mediaType models.MediaType) ([]models.OpenSession, error)
}

// RedisSessionRepository keeps one hash per content item mapping session id to
// user id, plus a reverse key per session used on close.
type RedisSessionRepository struct {
	rdb *redis.Client
}

// NewRedisSessionRepository creates a new RedisSessionRepository
func NewRedisSessionRepository(rdb *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func mediaKey(mediaType models.MediaType, mediaID string) string {
	return fmt.Sprintf("open_sessions:%s:%s", mediaType, mediaID)
}

func sessionKey(sessionID string) string {
	return "open_session:" + sessionID
}

// OpenSession registers a session watching a content item
func (r *RedisSessionRepository) OpenSession(ctx context.Context, s models.OpenSession) error {
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, mediaKey(s.MediaType, s.MediaID), s.SessionID, strconv.FormatUint(uint64(s.UserID), 10))
		p.Set(ctx, sessionKey(s.SessionID), string(s.MediaType)+":"+s.MediaID, 0)
		return nil
	})
	return err
}

// CloseSession removes a session. Unknown sessions are ignored.
func (r *RedisSessionRepository) CloseSession(ctx context.Context, sessionID string) error {
	ref, err := r.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}
	mediaType, mediaID, _ := strings.Cut(ref, ":")
	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HDel(ctx, mediaKey(models.MediaType(mediaType), mediaID), sessionID)
		p.Del(ctx, sessionKey(sessionID))
		return nil
	})
	return err
}

// ForMedia lists the sessions watching a content item
func (r *RedisSessionRepository) ForMedia(ctx context.Context, mediaID string, mediaType models.MediaType) ([]models.OpenSession, error) {
	entries, err := r.rdb.HGetAll(ctx, mediaKey(mediaType, mediaID)).Result()
	if err != nil {
		return nil, err
	}
	sessions := make([]models.OpenSession, 0, len(entries))
	for sessionID, rawUser := range entries {
		userID, err := strconv.ParseUint(rawUser, 10, 64)
		if err != nil {
			continue
		}
		sessions = append(sessions, models.OpenSession{
			SessionID: sessionID,
			UserID:    uint(userID),
			MediaID:   mediaID,
			MediaType: mediaType,
		})
	}
	return sessions, nil
}

// Package tokens stores per-user Strava refresh tokens in Redis, keyed by
// athlete id. Concurrent writes for the same user are last-write-wins.
package tokens

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("no refresh token for user")

type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// RefreshToken returns the stored refresh token for a user, or ErrNotFound.
func (s *Store) RefreshToken(ctx context.Context, userID int64) (string, error) {
	token, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// SetRefreshToken stores a user's refresh token, replacing any previous one.
func (s *Store) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	return s.rdb.Set(ctx, key(userID), token, 0).Err()
}

// Delete removes a user's token, as required on deauthorization.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yuzvak/storefront-service/internal/application/ports"
)

// SessionRepository reads the token and user record left by the login flow.
type SessionRepository struct {
	store    ports.LocalStorage
	tokenKey string
	userKey  string
}

func NewSessionRepository(store ports.LocalStorage, tokenKey, userKey string) *SessionRepository {
	return &SessionRepository{
		store:    store,
		tokenKey: tokenKey,
		userKey:  userKey,
	}
}

// Token returns "" when nobody is logged in.
func (r *SessionRepository) Token(ctx context.Context) (string, error) {
	token, found, err := r.store.GetItem(ctx, r.tokenKey)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if !found {
		return "", nil
	}
	return token, nil
}

// User returns nil when no user record is stored.
func (r *SessionRepository) User(ctx context.Context) (*ports.SessionUser, error) {
	raw, found, err := r.store.GetItem(ctx, r.userKey)
	if err != nil {
		return nil, fmt.Errorf("read session user: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var user ports.SessionUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &user, nil
}

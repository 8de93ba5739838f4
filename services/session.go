package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kvv7ma/bento-order-system/db"
	"github.com/kvv7ma/bento-order-system/models"

	"github.com/dgrijalva/jwt-go"
)

// Session is one chat's authenticated state: the bearer token and the
// user record the backend returned at login. Persisted so a bot restart
// does not log everyone out.
type Session struct {
	ChatID int64       `json:"chat_id"`
	Token  string      `json:"token"`
	User   models.User `json:"user"`
}

// GetSession loads the chat's session; nil without error when none exists.
func GetSession(ctx context.Context, chatID int64) (*Session, error) {
	var token string
	var userJSON []byte
	err := db.Pool.QueryRow(ctx, `
		SELECT token, user_record FROM sessions WHERE chat_id = $1`,
		chatID,
	).Scan(&token, &userJSON)
	if err != nil {
		// No row = not logged in
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, fmt.Errorf("unmarshal session user: %w", err)
	}
	return &Session{ChatID: chatID, Token: token, User: user}, nil
}

func SaveSession(ctx context.Context, s *Session) error {
	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO sessions (chat_id, token, user_record, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			token = $2,
			user_record = $3,
			updated_at = now()`,
		s.ChatID, s.Token, userJSON,
	)
	return err
}

func DeleteSession(ctx context.Context, chatID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE chat_id = $1`, chatID)
	return err
}

// TokenExpired reports whether the access token's exp claim has passed.
// The signature is not verified; that is the backend's job. A token without
// a readable exp claim is treated as live and left for the backend to judge.
func TokenExpired(token string, now time.Time) bool {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return now.Unix() >= int64(exp)
}

// Chat language preference, kept separately from the session so it
// survives logout.

func GetChatLanguage(ctx context.Context, chatID int64) (string, bool) {
	var code string
	err := db.Pool.QueryRow(ctx, `
		SELECT lang FROM chat_prefs WHERE chat_id = $1`,
		chatID,
	).Scan(&code)
	if err != nil || code == "" {
		return "", false
	}
	return code, true
}

func SetChatLanguage(ctx context.Context, chatID int64, code string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO chat_prefs (chat_id, lang, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			lang = $2,
			updated_at = now()`,
		chatID, code,
	)
	return err
}

package services

import (
	"context"
	"math"

	"github.com/kvv7ma/bento-order-system/db"
)

const ThrottleCooldownCapSeconds = 30

// Failed backend logins put the chat on an exponential cooldown so the bot
// does not hammer /auth/login on behalf of someone guessing passwords.

// LoginThrottleWaitSeconds returns how many seconds the chat must wait
// before the next login attempt (0 if no cooldown).
func LoginThrottleWaitSeconds(ctx context.Context, chatID int64) (int, error) {
	var wait float64
	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(EXTRACT(EPOCH FROM cooldown_until - now()), 0)
		FROM login_throttle WHERE chat_id = $1`,
		chatID,
	).Scan(&wait)
	if err != nil {
		return 0, nil // no row = no throttle
	}
	if wait <= 0 {
		return 0, nil
	}
	return int(wait) + 1, nil // round up
}

// RecordLoginFailed increments fail_count and sets cooldown_until =
// now() + min(30, 2^fail_count) seconds.
func RecordLoginFailed(ctx context.Context, chatID int64) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO login_throttle (chat_id, fail_count, last_failed_at, cooldown_until, updated_at)
		VALUES ($1, 1, now(), now() + (LEAST(30, POWER(2, 1)::int) || ' seconds')::interval, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			fail_count = login_throttle.fail_count + 1,
			last_failed_at = now(),
			cooldown_until = now() + (LEAST(30, POWER(2, login_throttle.fail_count + 1)::int) || ' seconds')::interval,
			updated_at = now()`,
		chatID,
	)
	return err
}

// RecordLoginSuccess resets fail_count and cooldown_until for the chat.
func RecordLoginSuccess(ctx context.Context, chatID int64) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO login_throttle (chat_id, fail_count, last_failed_at, cooldown_until, updated_at)
		VALUES ($1, 0, NULL, NULL, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			fail_count = 0,
			last_failed_at = NULL,
			cooldown_until = NULL,
			updated_at = now()`,
		chatID,
	)
	return err
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	if failCount >= 5 {
		return ThrottleCooldownCapSeconds
	}
	return int(math.Pow(2, float64(failCount)))
}

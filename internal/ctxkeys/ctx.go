package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	LanguageKey contextKey = "language"
)

// UserID returns the identity attached by the identity middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// Language returns the negotiated response language tag, or "" when unset.
func Language(ctx context.Context) string {
	lang, _ := ctx.Value(LanguageKey).(string)
	return lang
}

func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LanguageKey, lang)
}

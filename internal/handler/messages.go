package handler

import (
	"context"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys
const (
	msgGoalNotFound       = "goal not found"
	msgRecordNotFound     = "record not found"
	msgStorageUnavailable = "export storage is not configured"
)

var messages = newCatalog()

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Japanese))

	for _, m := range []struct {
		key, ja, en string
	}{
		{msgGoalNotFound, "目標が見つかりません", "Goal not found"},
		{msgRecordNotFound, "学習記録が見つかりません", "Study record not found"},
		{msgStorageUnavailable, "エクスポート先のストレージが設定されていません", "Export storage is not configured"},
	} {
		_ = b.SetString(language.Japanese, m.key, m.ja)
		_ = b.SetString(language.English, m.key, m.en)
	}

	return b
}

// localize renders key in the language negotiated for the request.
func localize(ctx context.Context, key string) string {
	tag := language.Japanese
	if lang := ctxkeys.Language(ctx); lang != "" {
		tag = language.Make(lang)
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(key)
}

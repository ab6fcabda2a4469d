package middleware

import (
	"net/http"

	"github.com/kawafuchieirin/team-workspace/internal/ctxkeys"
	"golang.org/x/text/language"
)

// Supported response languages. The first entry is the fallback.
func supportedLanguages(fallback string) []language.Tag {
	ja, en := language.Japanese, language.English
	if fallback == "en" {
		return []language.Tag{en, ja}
	}
	return []language.Tag{ja, en}
}

// Language negotiates the response language from Accept-Language.
// Requests without a usable header get fallback.
func Language(fallback string) func(http.Handler) http.Handler {
	supported := supportedLanguages(fallback)
	matcher := language.NewMatcher(supported)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tags, _, _ := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
			_, idx, _ := matcher.Match(tags...)
			base, _ := supported[idx].Base()

			ctx := ctxkeys.WithLanguage(r.Context(), base.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

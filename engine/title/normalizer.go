package title

import (
	"strings"
	"unicode/utf8"
)

// validSuffixes are the future-tense endings a title may already carry. A
// title ending in one of these is left untouched.
var validSuffixes = []string{
	"Edilecek",
	"Yapılacak",
	"Geliştirilecek",
	"Düzenlenecek",
	"İncelenecek",
	"Araştırılacak",
	"Oluşturulacak",
	"Kaldırılacak",
	"Güncellenecek",
	"Entegre Edilecek",
	"Test Edilecek",
	"Analiz Edilecek",
}

// rewriteRules nominalize verbal-noun endings into their future-tense form.
// Rules are tried in order and the first match wins; order is load-bearing
// since later roots are more general than earlier ones.
var rewriteRules = []struct {
	Root   string
	Future string
}{
	{"Geliştirme", "Geliştirilecek"},
	{"Düzenleme", "Düzenlenecek"},
	{"İnceleme", "İncelenecek"},
	{"Araştırma", "Araştırılacak"},
	{"Oluşturma", "Oluşturulacak"},
	{"Kaldırma", "Kaldırılacak"},
	{"Güncelleme", "Güncellenecek"},
	{"Test Etme", "Test Edilecek"},
	{"Entegrasyon", "Entegre Edilecek"},
	{"Analiz", "Analiz Edilecek"},
	{"Düzeltme", "Düzeltilecek"},
}

const fallbackSuffix = "Yapılacak"

// Normalize rewrites a raw action phrase into the canonical
// "<Prefix>: <Action>" future-tense form. The prefix is the space-joined,
// non-empty concatenation of the project label and the domain prefix; when
// both are empty the action is returned alone.
func Normalize(raw, project, domainPrefix string) string {
	action := strings.TrimSpace(raw)
	action = strings.TrimRight(action, ".!?;: ")

	if !hasCanonicalSuffix(action) {
		action = nominalizeToFuture(action)
	}

	parts := make([]string, 0, 2)
	for _, p := range []string{strings.TrimSpace(project), domainPrefix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if prefix := strings.Join(parts, " "); prefix != "" {
		return prefix + ": " + action
	}
	return action
}

func hasCanonicalSuffix(action string) bool {
	lowered := strings.ToLower(action)
	for _, suffix := range validSuffixes {
		if strings.HasSuffix(lowered, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// nominalizeToFuture applies the first matching rewrite rule, or appends the
// fallback suffix when nothing matches. Matching is case-insensitive via the
// per-rune simple case mapping, which folds the Turkish dotted İ to i; the
// replacement keeps its canonical casing.
func nominalizeToFuture(action string) string {
	lowered := strings.ToLower(action)
	for _, rule := range rewriteRules {
		root := strings.ToLower(rule.Root)
		if !strings.HasSuffix(lowered, root) {
			continue
		}
		return trimLastRunes(action, utf8.RuneCountInString(root)) + rule.Future
	}
	return action + " " + fallbackSuffix
}

// trimLastRunes removes the last n runes of s. The simple case mapping is
// one-to-one, so the rune count of a lowered match equals the rune count of
// the original span.
func trimLastRunes(s string, n int) string {
	end := len(s)
	for i := 0; i < n && end > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(s[:end])
		end -= size
	}
	return s[:end]
}

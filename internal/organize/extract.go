package organize

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no parseable JSON object can be recovered from
// the model output, even after the repair pass.
var ErrNoJSON = errors.New("no parseable JSON object in response")

var (
	fenceRe         = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_-]*)\s*:`)
	smartQuoteRe    = regexp.MustCompile("[“”]")
)

// ExtractJSON recovers a JSON object from untrusted model text. Extraction
// strategies run in order: direct parse, fenced code block, first-{ to last-}
// slice; when all fail, a best-effort repair pass runs and the same strategies
// are retried against the repaired text.
func ExtractJSON(raw string) (json.RawMessage, error) {
	if msg, ok := tryCandidates(raw); ok {
		return msg, nil
	}
	if msg, ok := tryCandidates(repairJSON(raw)); ok {
		return msg, nil
	}
	return nil, ErrNoJSON
}

func tryCandidates(raw string) (json.RawMessage, bool) {
	for _, candidate := range candidates(raw) {
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), true
		}
	}
	return nil, false
}

func candidates(raw string) []string {
	out := []string{strings.TrimSpace(raw)}
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}
	if sliced := braceSlice(raw); sliced != "" {
		out = append(out, sliced)
	}
	return out
}

func braceSlice(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// repairJSON fixes the malformations models most often produce: trailing
// commas, unquoted keys, single-quoted strings and typographic quotes. It is
// best effort and may still yield invalid JSON.
func repairJSON(raw string) string {
	s := smartQuoteRe.ReplaceAllString(raw, `"`)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2":`)
	s = replaceSingleQuotedStrings(s)
	return s
}

// replaceSingleQuotedStrings rewrites 'text' string literals to "text",
// skipping apostrophes inside double-quoted strings.
func replaceSingleQuotedStrings(s string) string {
	var b strings.Builder
	inDouble := false
	inSingle := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s) && (inDouble || inSingle):
			b.WriteByte(c)
			i++
			b.WriteByte(s[i])
		case c == '"' && !inSingle:
			inDouble = !inDouble
			b.WriteByte(c)
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

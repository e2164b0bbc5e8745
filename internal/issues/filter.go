package issues

import (
	"strings"
	"unicode"
)

const (
	// MaxFilteredComments caps how many comments survive filtering.
	MaxFilteredComments = 5
	// MinCommentTokens is the shortest comment, in whitespace-separated tokens, worth keeping.
	MinCommentTokens = 5
)

var lowSignalComments = map[string]struct{}{
	"+1":        {},
	"-1":        {},
	"👍":         {},
	"👍🏻":        {},
	"👍🏼":        {},
	"👍🏽":        {},
	"same here": {},
	"same":      {},
	"me too":    {},
	"upvote":    {},
	"following": {},
	"bump":      {},
}

// FilterComments reduces raw comment bodies to at most MaxFilteredComments trimmed,
// signal-bearing comments, preserving order.
func FilterComments(comments []string) []string {
	out := make([]string, 0, MaxFilteredComments)
	for _, c := range comments {
		if len(out) == MaxFilteredComments {
			break
		}
		text, ok := keepComment(c)
		if !ok {
			continue
		}
		out = append(out, text)
	}
	return out
}

func keepComment(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", false
	}
	if _, spam := lowSignalComments[strings.ToLower(text)]; spam {
		return "", false
	}
	if !hasLetter(text) {
		return "", false
	}
	if len(strings.Fields(text)) < MinCommentTokens {
		return "", false
	}
	return text, true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

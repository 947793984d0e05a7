package chat

import "strings"

// escaper rewrites the characters that would let user input break out of an
// HTML context. The replacer scans its input once, so already-inserted
// entities are never re-expanded within a single call.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeText returns s with &, <, > and " replaced by their HTML entities.
func EscapeText(s string) string {
	return escaper.Replace(s)
}

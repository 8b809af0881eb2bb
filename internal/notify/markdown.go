package notify

import "strings"

// markdownEscaper escapes the characters Telegram's MarkdownV2 parser treats
// as reserved: _ * [ ] ( ) ~ ` > # + - = | { } . !
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMarkdown escapes text for inclusion in a MarkdownV2 message
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

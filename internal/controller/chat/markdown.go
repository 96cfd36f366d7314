package chat

import "regexp"

var (
	markdownV1Specials = regexp.MustCompile("([_*`\\[])")
	markdownV2Specials = regexp.MustCompile(`([_*\[\]()~` + "`" + `>#+\-=|{}.!\\])`)
)

// EscapeMarkdown escapes user text for the legacy Markdown mode.
func EscapeMarkdown(text string) string {
	return markdownV1Specials.ReplaceAllString(text, `\$1`)
}

// EscapeMarkdownV2 escapes user text for MarkdownV2.
func EscapeMarkdownV2(text string) string {
	return markdownV2Specials.ReplaceAllString(text, `\$1`)
}

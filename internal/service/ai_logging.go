package service

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const maxChatLogSnippetRunes = 1024

// logChatExchange 以 debug 级别记录聊天请求与响应的关键信息，方便排查模型行为。
func logChatExchange(log *logrus.Entry, phase, content string) {
	trimmed := strings.TrimSpace(content)
	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxChatLogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxChatLogSnippetRunes]) + "…(truncated)"
	}
	if snippet == "" {
		snippet = "<empty>"
	}
	log.WithFields(logrus.Fields{"phase": phase, "runes": runeCount}).Debug(snippet)
}

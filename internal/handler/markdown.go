package handler

import (
	"bytes"
	htmlstd "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	contentSanitizer = buildContentSanitizer()
	textSanitizer    = bluemonday.StrictPolicy()
)

// renderMarkdown converts article content to sanitised HTML. Bare YouTube
// links on their own line become embedded players.
func renderMarkdown(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(applyVideoEmbeds(content)), &buf); err != nil {
		return contentSanitizer.Sanitize(content)
	}
	return string(contentSanitizer.SanitizeBytes(buf.Bytes()))
}

// plainText strips any markup from short summary fields.
func plainText(value string) string {
	return strings.TrimSpace(htmlstd.UnescapeString(textSanitizer.Sanitize(value)))
}

package handler

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_VideoEmbeds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		wantSrc  string
	}{
		{
			name:     "watch",
			markdown: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantSrc:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name:     "short-link",
			markdown: "https://youtu.be/dQw4w9WgXcQ?t=1m5s",
			wantSrc:  "start=65",
		},
		{
			name:     "shorts-without-scheme",
			markdown: "youtube.com/shorts/abc123XYZ",
			wantSrc:  "https://www.youtube.com/embed/abc123XYZ",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html := renderMarkdown(tt.markdown)
			if !strings.Contains(html, "<iframe") {
				t.Fatalf("expected iframe in output, got: %s", html)
			}
			if !strings.Contains(html, `class="video-embed"`) {
				t.Fatalf("expected video container, got: %s", html)
			}
			if !strings.Contains(html, tt.wantSrc) {
				t.Fatalf("expected iframe src to include %q, got: %s", tt.wantSrc, html)
			}
		})
	}
}

func TestRenderMarkdown_SkipsVideoEmbedInsideCodeFence(t *testing.T) {
	t.Parallel()

	markdown := "```\nhttps://www.youtube.com/watch?v=dQw4w9WgXcQ\n```"
	html := renderMarkdown(markdown)
	if strings.Contains(html, "<iframe") {
		t.Fatalf("expected no iframe inside code fence, got: %s", html)
	}
}

func TestRenderMarkdown_SkipsListAndQuoteLines(t *testing.T) {
	t.Parallel()

	for _, markdown := range []string{
		"- https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"> https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"1. https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	} {
		if html := renderMarkdown(markdown); strings.Contains(html, "<iframe") {
			t.Fatalf("expected no iframe for %q, got: %s", markdown, html)
		}
	}
}

func TestRenderMarkdown_StripsForeignIframes(t *testing.T) {
	t.Parallel()

	html := renderMarkdown(`<iframe src="https://evil.example.com/x"></iframe>`)
	if strings.Contains(html, "evil.example.com") {
		t.Fatalf("expected foreign iframe src to be stripped, got: %s", html)
	}
}

func TestRenderMarkdown_Basics(t *testing.T) {
	t.Parallel()

	html := renderMarkdown("# Unit 1\n\nCommissioned **2022**.\n\n<script>alert(1)</script>")
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>2022</strong>") {
		t.Fatalf("expected rendered markdown, got: %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("expected script to be removed, got: %s", html)
	}
	if renderMarkdown("   ") != "" {
		t.Fatalf("expected blank content to render empty")
	}
}

func TestYouTubeEmbedURL(t *testing.T) {
	t.Parallel()

	if _, ok := youTubeEmbedURL("https://vimeo.com/123"); ok {
		t.Fatalf("expected non-YouTube link to be rejected")
	}
	if _, ok := youTubeEmbedURL("https://www.youtube.com/watch"); ok {
		t.Fatalf("expected link without video id to be rejected")
	}
	got, ok := youTubeEmbedURL("https://m.youtube.com/live/LIVE42?start=30")
	if !ok {
		t.Fatalf("expected live link to be accepted")
	}
	if !strings.HasPrefix(got, "https://www.youtube.com/embed/LIVE42?") || !strings.Contains(got, "start=30") {
		t.Fatalf("unexpected embed url: %s", got)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	if got := plainText("  <b>Tender</b> &amp; notice "); got != "Tender & notice" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}

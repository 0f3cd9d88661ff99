package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-1.5-flash"

	// ChatHistoryLimit is how many prior turns are forwarded upstream.
	ChatHistoryLimit = 10
	chatTimeout      = 30 * time.Second
)

// ErrChatMessageEmpty is returned for a blank chat message; no upstream
// call is made.
var ErrChatMessageEmpty = errors.New("message is required")

const chatSystemPrompt = `You are the BIFPCL Assistant on the official website of Bangladesh-India Friendship Power Company (Pvt.) Limited.
BIFPCL is a 50:50 joint venture between NTPC Ltd. of India and the Bangladesh Power Development Board (BPDB).
It owns the Maitree Super Thermal Power Project, a 1320 MW (2 x 660 MW) ultra-supercritical coal-fired plant in Rampal, Bagerhat, Bangladesh.
Answer questions about the company, the project, tenders (/tenders), careers (/careers), notices (/notices) and contact details (/contact).
Keep answers short, factual and professional. If you do not know something, direct the visitor to the contact page.`

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ChatTurn is one prior message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatReply is the answer returned to the visitor. Fallback is set when the
// text came from the canned responses.
type ChatReply struct {
	Response string
	Fallback bool
}

// ChatbotConfig configures the upstream generative-language endpoint.
type ChatbotConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ChatbotService proxies visitor questions to Gemini and falls back to
// keyword-matched canned text on any upstream failure.
type ChatbotService struct {
	apiKey  string
	model   string
	baseURL string
	http    httpDoer
	log     *logrus.Entry
}

// NewChatbotService creates a ChatbotService instance.
func NewChatbotService(cfg ChatbotConfig) *ChatbotService {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultGeminiModel
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	return &ChatbotService{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		baseURL: base,
		http:    &http.Client{Timeout: chatTimeout},
		log:     logrus.WithField("component", "chatbot"),
	}
}

// SetHTTPClient replaces the upstream HTTP client, mainly for tests.
func (s *ChatbotService) SetHTTPClient(client httpDoer) {
	if client == nil {
		s.http = &http.Client{Timeout: chatTimeout}
		return
	}
	s.http = client
}

// Reply answers message given the caller-held history. Upstream errors
// never reach the caller.
func (s *ChatbotService) Reply(ctx context.Context, message string, history []ChatTurn) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, ErrChatMessageEmpty
	}

	if s.apiKey == "" {
		return ChatReply{Response: CannedResponse(message), Fallback: true}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	text, err := s.generate(ctx, message, history)
	if err != nil {
		s.log.WithError(err).WithField("provider", "gemini").Warn("chatbot upstream failed, using canned response")
		return ChatReply{Response: CannedResponse(message), Fallback: true}, nil
	}
	return ChatReply{Response: text}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	SystemInstruction geminiContent          `json:"system_instruction"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *ChatbotService) generate(ctx context.Context, message string, history []ChatTurn) (string, error) {
	payload := geminiRequest{
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: chatSystemPrompt}}},
		Contents:          buildChatContents(message, history),
		GenerationConfig:  geminiGenerationConfig{Temperature: 0.7, MaxOutputTokens: 500},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logChatExchange(s.log, "request", message)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned %s", resp.Status)
	}

	var decoded geminiResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if msg := strings.TrimSpace(decoded.Error.Message); msg != "" {
		return "", fmt.Errorf("gemini error: %s", msg)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	text := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	logChatExchange(s.log, "response", text)
	return text, nil
}

// buildChatContents keeps the last ChatHistoryLimit turns and appends the
// new message. Gemini calls the assistant role "model".
func buildChatContents(message string, history []ChatTurn) []geminiContent {
	if len(history) > ChatHistoryLimit {
		history = history[len(history)-ChatHistoryLimit:]
	}

	contents := make([]geminiContent, 0, len(history)+1)
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		role := "user"
		if turn.Role == "assistant" || turn.Role == "model" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: content}}})
	}
	return append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})
}

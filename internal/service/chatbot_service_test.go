package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type fakeHTTPClient struct {
	handler func(*http.Request) (*http.Response, error)
}

func (f fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if f.handler == nil {
		return nil, errors.New("no handler configured")
	}
	return f.handler(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestChatbotUsesDefaultTimeout(t *testing.T) {
	t.Parallel()

	svc := NewChatbotService(ChatbotConfig{})
	client, ok := svc.http.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", svc.http)
	}
	if client.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", client.Timeout)
	}
	if svc.model != DefaultGeminiModel || svc.baseURL != DefaultGeminiBaseURL {
		t.Fatalf("unexpected defaults %s %s", svc.model, svc.baseURL)
	}
}

func TestChatbotRejectsEmptyMessage(t *testing.T) {
	t.Parallel()

	svc := NewChatbotService(ChatbotConfig{APIKey: "key"})
	svc.SetHTTPClient(fakeHTTPClient{handler: func(*http.Request) (*http.Response, error) {
		t.Fatalf("upstream must not be called")
		return nil, nil
	}})
	if _, err := svc.Reply(context.Background(), "   ", nil); !errors.Is(err, ErrChatMessageEmpty) {
		t.Fatalf("expected ErrChatMessageEmpty, got %v", err)
	}
}

func TestChatbotWithoutKeyUsesCannedResponses(t *testing.T) {
	t.Parallel()

	svc := NewChatbotService(ChatbotConfig{})
	reply, err := svc.Reply(context.Background(), "How do I submit a BID?", nil)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if !reply.Fallback || !strings.Contains(reply.Response, "/tenders") {
		t.Fatalf("unexpected reply %+v", reply)
	}

	reply, err = svc.Reply(context.Background(), "Tell me a story", nil)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Response != cannedDefault {
		t.Fatalf("expected default canned response, got %q", reply.Response)
	}
}

func TestChatbotCallsGemini(t *testing.T) {
	t.Parallel()

	history := make([]ChatTurn, 0, ChatHistoryLimit+2)
	for i := 0; i < ChatHistoryLimit+2; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, ChatTurn{Role: role, Content: "turn"})
	}

	svc := NewChatbotService(ChatbotConfig{APIKey: "secret", Model: "gemini-test", BaseURL: "https://gemini.test/v1beta/"})
	svc.SetHTTPClient(fakeHTTPClient{handler: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-test:generateContent" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Fatalf("missing api key")
		}

		var payload geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(payload.Contents) != ChatHistoryLimit+1 {
			t.Fatalf("expected %d contents, got %d", ChatHistoryLimit+1, len(payload.Contents))
		}
		last := payload.Contents[len(payload.Contents)-1]
		if last.Role != "user" || last.Parts[0].Text != "What is Maitree?" {
			t.Fatalf("unexpected last content %#v", last)
		}
		if payload.Contents[1].Role != "model" {
			t.Fatalf("assistant turns should map to model, got %q", payload.Contents[1].Role)
		}
		if !strings.Contains(payload.SystemInstruction.Parts[0].Text, "BIFPCL") {
			t.Fatalf("missing system instruction")
		}

		return jsonResponse(http.StatusOK, `{"candidates":[{"content":{"role":"model","parts":[{"text":" A 1320 MW plant. "}]}}]}`), nil
	}})

	reply, err := svc.Reply(context.Background(), "What is Maitree?", history)
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply.Fallback || reply.Response != "A 1320 MW plant." {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestChatbotFallsBackOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*http.Request) (*http.Response, error){
		"transport": func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
		"status": func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"quota"}}`), nil
		},
		"empty": func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, `{"candidates":[]}`), nil
		},
	}
	for name, handler := range cases {
		svc := NewChatbotService(ChatbotConfig{APIKey: "secret"})
		svc.SetHTTPClient(fakeHTTPClient{handler: handler})

		reply, err := svc.Reply(context.Background(), "Any vacancies in careers?", nil)
		if err != nil {
			t.Fatalf("%s: reply should not fail: %v", name, err)
		}
		if !reply.Fallback || !strings.Contains(reply.Response, "/careers") {
			t.Fatalf("%s: unexpected reply %+v", name, reply)
		}
	}
}

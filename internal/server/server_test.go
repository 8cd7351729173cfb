package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/textmood"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts ...textmood.Option) *gin.Engine {
	t.Helper()
	opts = append(opts, textmood.UsingDetector(nil))
	a, err := textmood.NewAnalyzer(opts...)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return SetupRouter(a, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func post(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, `{"text": "Estoy feliz. Hoy fue un mal día. El clima es normal.", "top_n": 3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report textmood.AnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Words) != 3 {
		t.Errorf("expected 3 words, got %v", report.Words)
	}
	if len(report.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(report.Sentences))
	}
	if report.Sentences[1].Class.Polarity != textmood.Negative {
		t.Errorf("expected negative second sentence, got %s", report.Sentences[1].Class.Polarity)
	}
}

func TestAnalyzeEndpointThresholds(t *testing.T) {
	r := newTestRouter(t)

	w := post(t, r, `{"text": "Estoy feliz", "positive_threshold": 0.9}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var report textmood.AnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Class.Polarity != textmood.Neutral {
		t.Errorf("expected neutral, got %s", report.Class.Polarity)
	}
}

func TestAnalyzeEndpointBadRequests(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"text": `},
		{"empty text", `{"text": "   "}`},
		{"negative top", `{"text": "hola mundo", "top_n": -1}`},
		{"crossed thresholds", `{"text": "hola mundo", "positive_threshold": -0.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := body["error"]; !ok {
				t.Errorf("expected an error field, got %v", body)
			}
		})
	}
}

func TestAnalyzeEndpointScoringFailure(t *testing.T) {
	r := newTestRouter(t, textmood.UsingScorer(textmood.ScorerFunc(
		func(context.Context, string) (textmood.SentimentScore, error) {
			return textmood.SentimentScore{}, errors.New("model unavailable")
		})))

	w := post(t, r, `{"text": "Me encanta ver cómo mi bebé aprende cosas nuevas"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Error string                   `json:"error"`
		Words []textmood.WordFrequency `json:"words"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == "" {
		t.Error("expected an error message")
	}
	if len(body.Words) != 7 || body.Words[0].Word != "encanta" {
		t.Errorf("expected the word table, got %v", body.Words)
	}
}

func TestAnalyzeEndpointTranslationWarning(t *testing.T) {
	r := newTestRouter(t, textmood.UsingTranslator(textmood.TranslatorFunc(
		func(context.Context, string, string) (string, error) {
			return "", errors.New("quota exceeded")
		})))

	w := post(t, r, `{"text": "Estoy feliz", "target_language": "en"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var report textmood.AnalysisReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", report.Warnings)
	}
	if report.Class.Polarity != textmood.Positive {
		t.Errorf("expected the original text to be scored, got %s", report.Class.Polarity)
	}
}

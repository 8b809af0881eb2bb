package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/pkg/logger"
)

func newTestTelegram(t *testing.T, handler http.HandlerFunc) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	n := NewTelegram(&config.TelegramConfig{BotToken: "test-token", GroupID: "-100200300"}, logger.New("ERROR"))
	n.baseURL = srv.URL
	return n
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	n := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		json.NewEncoder(w).Encode(sendMessageResponse{OK: true})
	})

	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q, want bot token in path", gotPath)
	}
	if gotBody.ChatID != "-100200300" || gotBody.Text != "hello" {
		t.Errorf("body = %+v, want chat id and text", gotBody)
	}
	if gotBody.ParseMode != "MarkdownV2" {
		t.Errorf("ParseMode = %q, want MarkdownV2", gotBody.ParseMode)
	}
}

func TestTelegramSendAPIError(t *testing.T) {
	n := newTestTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(sendMessageResponse{
			OK: false, ErrorCode: 400, Description: "can't parse entities",
		})
	})

	err := n.Send(context.Background(), "broken *markdown")
	if err == nil {
		t.Fatal("Send() error = nil, want telegram API error")
	}
	if !strings.Contains(err.Error(), "can't parse entities") {
		t.Errorf("err = %v, want API description included", err)
	}
}

type flakyNotifier struct {
	fail int
	sent int
}

func (f *flakyNotifier) Send(context.Context, string) error {
	if f.fail > 0 {
		f.fail--
		return errors.New("channel down")
	}
	f.sent++
	return nil
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	n := &flakyNotifier{fail: 1}
	d := NewDispatcher(n, 100, logger.New("ERROR"))

	if ok := d.Dispatch(context.Background(), "first"); ok {
		t.Error("Dispatch() = true, want false on delivery failure")
	}
	if ok := d.Dispatch(context.Background(), "second"); !ok {
		t.Error("Dispatch() = false, want true once the channel recovers")
	}
	if n.sent != 1 {
		t.Errorf("sent = %d, want 1", n.sent)
	}
}

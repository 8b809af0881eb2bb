package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/pkg/logger"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends messages to a Telegram group via the Bot API,
// using MarkdownV2 parse mode
type TelegramNotifier struct {
	httpClient *http.Client
	baseURL    string
	botToken   string
	groupID    string
	logger     *logger.Logger
}

// NewTelegram creates a Telegram notifier
func NewTelegram(cfg *config.TelegramConfig, log *logger.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:  telegramAPIBase,
		botToken: cfg.BotToken,
		groupID:  cfg.GroupID,
		logger:   log,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers text to the configured group
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload := sendMessageRequest{
		ChatID:    t.groupID,
		Text:      text,
		ParseMode: "MarkdownV2",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var body sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if !body.OK {
		return fmt.Errorf("telegram API error %d: %s", body.ErrorCode, body.Description)
	}

	t.logger.Debug("Telegram message sent", "group_id", t.groupID)
	return nil
}

package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/binary/proto"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	waLog "go.mau.fi/whatsmeow/util/log"

	"mbbank-monitor/internal/config"
	"mbbank-monitor/pkg/logger"
)

// WhatsAppNotifier sends messages to a WhatsApp group via whatsmeow.
// The session is persisted in a sqlite store; first run requires pairing
// with a QR code rendered on the terminal.
type WhatsAppNotifier struct {
	client   *whatsmeow.Client
	groupJID types.JID
	logger   *logger.Logger
}

// NewWhatsApp creates a WhatsApp notifier backed by a sqlite session store
func NewWhatsApp(ctx context.Context, cfg *config.WhatsAppConfig, log *logger.Logger) (*WhatsAppNotifier, error) {
	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.DBPath), waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	groupJID, err := types.ParseJID(cfg.GroupID)
	if err != nil {
		return nil, fmt.Errorf("invalid group JID %q: %w", cfg.GroupID, err)
	}

	return &WhatsAppNotifier{
		client:   whatsmeow.NewClient(deviceStore, waLog.Noop),
		groupJID: groupJID,
		logger:   log,
	}, nil
}

// Connect establishes the WhatsApp session, pairing with a QR code when no
// stored session exists
func (w *WhatsAppNotifier) Connect(ctx context.Context) error {
	if w.client.Store.ID != nil {
		w.logger.Info("Existing WhatsApp session found, connecting...")
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	w.logger.Info("No WhatsApp session found, starting QR code pairing...")

	// QR channel must be requested before Connect
	qrChan, err := w.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}

	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	for evt := range qrChan {
		switch evt.Event {
		case "code":
			fmt.Println("Scan this QR code with WhatsApp (Settings > Linked Devices):")
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		case "success":
			w.logger.Info("WhatsApp pairing successful")
			return nil
		case "timeout":
			return fmt.Errorf("QR code scan timeout")
		case "error":
			return fmt.Errorf("QR pairing error: %v", evt.Error)
		}
	}

	if !w.client.IsLoggedIn() {
		return fmt.Errorf("QR pairing did not complete")
	}
	return nil
}

// Disconnect tears down the WhatsApp connection
func (w *WhatsAppNotifier) Disconnect() {
	w.client.Disconnect()
}

// Send delivers text to the configured group
func (w *WhatsAppNotifier) Send(ctx context.Context, text string) error {
	if !w.client.IsConnected() {
		return fmt.Errorf("WhatsApp client not connected")
	}

	message := &waProto.Message{
		Conversation: &text,
	}

	resp, err := w.client.SendMessage(ctx, w.groupJID, message)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	w.logger.Debug("WhatsApp message sent", "message_id", resp.ID, "group", w.groupJID.String())
	return nil
}

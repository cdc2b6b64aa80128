package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// Button is one inline keyboard button.
type Button struct {
	Text string
	Data string
}

// Messenger sends messages and downloads user uploads through the
// Telegram Bot API. It implements flow.Messenger.
type Messenger struct {
	api    *tgbotapi.Bot
	client *http.Client
}

func NewMessenger(api *tgbotapi.Bot) *Messenger {
	return &Messenger{
		api:    api,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (m *Messenger) SendText(chatID int64, text string) error {
	_, err := m.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ParseMode: "HTML",
	})
	if err != nil {
		// HTML parse failures fall back to plain text
		_, err = m.api.SendMessage(chatID, text, nil)
	}
	return err
}

// SendInline sends a message with a single row of inline buttons.
func (m *Messenger) SendInline(chatID int64, text string, buttons []Button) error {
	row := make([]tgbotapi.InlineKeyboardButton, len(buttons))
	for i, btn := range buttons {
		row[i] = tgbotapi.InlineKeyboardButton{
			Text:         btn.Text,
			CallbackData: btn.Data,
		}
	}
	_, err := m.api.SendMessage(chatID, text, &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
		},
	})
	return err
}

// FetchFile downloads an upload by its Telegram file ID and returns the
// bytes plus the original filename.
func (m *Messenger) FetchFile(ctx context.Context, fileID string) ([]byte, string, error) {
	f, err := m.api.GetFile(fileID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(m.api, nil), nil)
	if err != nil {
		return nil, "", fmt.Errorf("building download request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("downloading file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading file body: %w", err)
	}

	return data, path.Base(f.FilePath), nil
}

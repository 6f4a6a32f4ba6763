package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"dokon-pos/internal/models"
)

// Telegram pushes a short message to the shop owner's chat after each
// committed sale. It is strictly best effort: the sale is already
// durable by the time this runs, and a delivery failure is only logged.
type Telegram struct {
	BotToken string
	ChatID   string
	Client   *http.Client
}

func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		BotToken: botToken,
		ChatID:   chatID,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether credentials are configured at all.
func (t *Telegram) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SaleCompleted sends the sale summary. Call it in a goroutine; it never
// blocks checkout and never returns an error to the caller.
func (t *Telegram) SaleCompleted(sale *models.Sale) {
	if !t.Enabled() {
		return
	}

	itemCount := 0
	for _, item := range sale.Items {
		itemCount += item.Quantity
	}

	text := fmt.Sprintf("🧾 Yangi sotuv #%04d\nMahsulotlar: %d ta\nJami: %d UZS\nTo'lov: %s",
		sale.ReceiptNo, itemCount, sale.Total, sale.PaymentMethod)
	if sale.Customer != "" {
		text += "\nMijoz: " + sale.Customer
	}

	if err := t.send(text); err != nil {
		log.Printf("telegram notify failed for sale %d: %v", sale.ID, err)
	}
}

func (t *Telegram) send(text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id": t.ChatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)
	resp, err := t.Client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned %s", resp.Status)
	}
	return nil
}

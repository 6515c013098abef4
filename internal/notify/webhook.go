package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WebhookSender отправляет отчеты POST-запросом на настроенный URL
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender создает webhook-канал доставки
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send отправляет отчет как JSON-пейлоад
func (w *WebhookSender) Send(ctx context.Context, text string) error {
	payload := map[string]string{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"report":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: ошибка сериализации: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: ошибка отправки: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: статус %d", resp.StatusCode)
	}

	return nil
}

// Name возвращает идентификатор канала
func (w *WebhookSender) Name() string {
	return "webhook"
}

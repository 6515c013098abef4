package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	errNoData     = errors.New("пустой ответ биржи")
	errBadPayload = errors.New("неожиданный формат ответа биржи")
)

// newHTTPClient возвращает HTTP-клиент для публичных REST-эндпоинтов
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ в v
func getJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, v interface{}) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("статус %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

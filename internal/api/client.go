// Package api предоставляет HTTP-клиент удалённого API учёта покупателей, товаров и очередей.
package api

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

	"github.com/hashicorp/go-cleanhttp"
)

const basePath = "/api"

// Client инкапсулирует HTTP-взаимодействие с удалённым API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError возвращается, когда сервер ответил кодом вне диапазона 2xx.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.StatusCode, e.Message)
}

// NewClient создаёт клиент для API по указанному адресу. Транспорт оборачивается
// переданными перехватчиками (токен, идентификатор запроса, журналирование);
// nil означает пул соединений go-cleanhttp без перехватчиков.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration) *Client {
	base := strings.TrimRight(baseURL, "/")
	if base != "" && !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}

	if transport == nil {
		transport = cleanhttp.DefaultPooledTransport()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(base, basePath),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// DefaultTransport возвращает базовый транспорт с пулом соединений.
func DefaultTransport() http.RoundTripper {
	return cleanhttp.DefaultPooledTransport()
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorBody struct {
	Errors  json.RawMessage `json:"errors"`
	Message string          `json:"message"`
}

// do выполняет запрос и декодирует ответ в out. Ответ может быть обёрнут
// в {"data": ...} или передан без обёртки.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("api client not configured")
	}

	u := c.baseURL + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		// {"data":null} означает пустой ответ: out остаётся нулевым.
		if bytes.Equal(env.Data, []byte("null")) {
			return nil
		}
		raw = env.Data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if len(body.Errors) > 0 {
		var s string
		if err := json.Unmarshal(body.Errors, &s); err == nil {
			return s
		}
		return string(body.Errors)
	}
	return body.Message
}

// IsStatus сообщает, является ли err ответом сервера с указанным кодом.
func IsStatus(err error, code int) bool {
	var sErr *StatusError
	return errors.As(err, &sErr) && sErr.StatusCode == code
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

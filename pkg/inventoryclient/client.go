// Package inventoryclient — Go клиент Inventory Service и клиентская
// view-модель (локальный кэш, поиск, сводная статистика, валидация формы).
package inventoryclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Book представляет книгу в wire-формате API
type Book struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// BookInput представляет поля новой книги (без ID: его присваивает сервер)
type BookInput struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// BookPatch представляет частичное обновление: nil-поля не отправляются
type BookPatch struct {
	Title    *string  `json:"title,omitempty"`
	Author   *string  `json:"author,omitempty"`
	ISBN     *string  `json:"isbn,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// ErrNotFound возвращается, когда сервер ответил 404 на update/delete
var ErrNotFound = errors.New("book not found")

// APIError представляет не-2xx ответ сервера
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d message=%q", e.StatusCode, e.Message)
}

// Unwrap позволяет проверять 404 через errors.Is(err, ErrNotFound)
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client — HTTP клиент Inventory Service
// Все методы принимают context и возвращают типизированные ошибки:
// 404 — ErrNotFound (через APIError), прочие не-2xx — *APIError,
// сетевые сбои — обёрнутая транспортная ошибка
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создаёт клиент для сервиса по базовому URL, например "http://localhost:3001"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do выполняет запрос и декодирует успешный ответ в out (если out != nil)
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError читает тело ошибки в формате {"message": "..."}
// Если тело не парсится, сообщение остаётся пустым — статус важнее
func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Message = body.Message
		}
	}

	return apiErr
}

// ListBooks возвращает всю коллекцию книг
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook создаёт книгу и возвращает её вместе с присвоенным сервером ID
func (c *Client) CreateBook(ctx context.Context, input BookInput) (Book, error) {
	var created Book
	if err := c.do(ctx, http.MethodPost, "/api/books", input, &created); err != nil {
		return Book{}, err
	}
	return created, nil
}

// UpdateBook отправляет частичное обновление и возвращает обновлённую книгу
func (c *Client) UpdateBook(ctx context.Context, id string, patch BookPatch) (Book, error) {
	var updated Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+id, patch, &updated); err != nil {
		return Book{}, err
	}
	return updated, nil
}

// DeleteBook удаляет книгу по ID
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+id, nil, nil)
}

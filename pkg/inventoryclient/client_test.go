package inventoryclient

import (
	"context"
	stdjson "encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeServer — минимальная имитация Inventory Service для тестов клиента
type fakeServer struct {
	mu     sync.Mutex
	books  map[string]Book
	nextID int
	// listCalls считает обращения к GET /api/books
	listCalls int
}

func newFakeServer() *fakeServer {
	return &fakeServer{books: make(map[string]Book), nextID: 1}
}

func (f *fakeServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id := strings.TrimPrefix(r.URL.Path, "/api/books")
		id = strings.TrimPrefix(id, "/")

		switch {
		case r.Method == http.MethodGet && id == "":
			f.listCalls++
			books := make([]Book, 0, len(f.books))
			for _, b := range f.books {
				books = append(books, b)
			}
			w.Header().Set("Content-Type", "application/json")
			stdjson.NewEncoder(w).Encode(books)

		case r.Method == http.MethodPost && id == "":
			var input BookInput
			body, _ := io.ReadAll(r.Body)
			stdjson.Unmarshal(body, &input)
			book := Book{
				ID:       "id-" + strings.Repeat("x", f.nextID),
				Title:    input.Title,
				Author:   input.Author,
				ISBN:     input.ISBN,
				Quantity: input.Quantity,
				Price:    input.Price,
			}
			f.nextID++
			f.books[book.ID] = book
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			stdjson.NewEncoder(w).Encode(book)

		case r.Method == http.MethodPut:
			book, ok := f.books[id]
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				stdjson.NewEncoder(w).Encode(map[string]string{"message": "Book not found"})
				return
			}
			var patch BookPatch
			body, _ := io.ReadAll(r.Body)
			stdjson.Unmarshal(body, &patch)
			if patch.Title != nil {
				book.Title = *patch.Title
			}
			if patch.Author != nil {
				book.Author = *patch.Author
			}
			if patch.ISBN != nil {
				book.ISBN = *patch.ISBN
			}
			if patch.Quantity != nil {
				book.Quantity = *patch.Quantity
			}
			if patch.Price != nil {
				book.Price = *patch.Price
			}
			f.books[id] = book
			w.Header().Set("Content-Type", "application/json")
			stdjson.NewEncoder(w).Encode(book)

		case r.Method == http.MethodDelete:
			if _, ok := f.books[id]; !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusNotFound)
				stdjson.NewEncoder(w).Encode(map[string]string{"message": "Book not found"})
				return
			}
			delete(f.books, id)
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

func newTestClient(t *testing.T) (*Client, *fakeServer) {
	t.Helper()
	fake := newFakeServer()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return New(srv.URL), fake
}

func TestClient_CreateAndList(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	created, err := client.CreateBook(ctx, BookInput{
		Title:    "Dune",
		Author:   "Herbert",
		ISBN:     "9780441013593",
		Quantity: 10,
		Price:    9.99,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Dune", created.Title)

	books, err := client.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, created, books[0])
}

func TestClient_UpdateBook(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	created, err := client.CreateBook(ctx, BookInput{Title: "Dune", Author: "Herbert", ISBN: "9780441013593", Quantity: 10, Price: 9.99})
	require.NoError(t, err)

	quantity := 3
	updated, err := client.UpdateBook(ctx, created.ID, BookPatch{Quantity: &quantity})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.ID, updated.ID)
}

func TestClient_NotFoundIsTyped(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	quantity := 1
	_, err := client.UpdateBook(ctx, "nonexistent-id", BookPatch{Quantity: &quantity})
	require.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Book not found", apiErr.Message)

	err = client.DeleteBook(ctx, "nonexistent-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClient_DeleteBook(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	created, err := client.CreateBook(ctx, BookInput{Title: "Dune", Author: "Herbert", ISBN: "9780441013593", Quantity: 10, Price: 9.99})
	require.NoError(t, err)

	require.NoError(t, client.DeleteBook(ctx, created.ID))

	// Повторное удаление — NotFound
	require.ErrorIs(t, client.DeleteBook(ctx, created.ID), ErrNotFound)
}

func TestClient_TransportErrorIsWrapped(t *testing.T) {
	ctx := context.Background()
	// Порт закрыт: соединение не установится
	client := New("http://127.0.0.1:1")

	_, err := client.ListBooks(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_PatchOmitsAbsentFields(t *testing.T) {
	// Проверяем wire-формат: nil-поля не должны попадать в JSON
	quantity := 3
	payload, err := stdjson.Marshal(BookPatch{Quantity: &quantity})
	require.NoError(t, err)
	require.JSONEq(t, `{"quantity":3}`, string(payload))
}

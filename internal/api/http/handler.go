package httpapi

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/shestoi/bookstore-inventory/internal/repository"
	"github.com/shestoi/bookstore-inventory/internal/service"
	"github.com/shestoi/bookstore-inventory/platform/observability"
)

// json — std-совместимая конфигурация json-iterator
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler содержит HTTP-обработчики Inventory Service
// Зависит от service слоя, но не знает о деталях хранилища
type Handler struct {
	inventory *service.InventoryService
	logger    *zap.Logger
}

// NewHandler создаёт новый HTTP handler
func NewHandler(inventory *service.InventoryService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		inventory: inventory,
		logger:    logger,
	}
}

// BookRequest представляет тело запроса на создание или обновление книги
// Поля-указатели позволяют отличить "поле не передано" от нулевого значения —
// это важно для частичного обновления
// Поле id из тела намеренно не читается: идентификатор задаёт только сервер
type BookRequest struct {
	Title    *string  `json:"title"`
	Author   *string  `json:"author"`
	ISBN     *string  `json:"isbn"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

// BookResponse представляет книгу в HTTP ответе
type BookResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	ISBN     string  `json:"isbn"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ErrorResponse представляет тело ошибки, например {"message": "Book not found"}
type ErrorResponse struct {
	Message string `json:"message"`
}

func toResponse(book repository.Book) BookResponse {
	return BookResponse{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		ISBN:     book.ISBN,
		Quantity: book.Quantity,
		Price:    book.Price,
	}
}

// writeJSON сериализует payload и пишет его с указанным статусом
func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError пишет ошибку в формате {"message": "..."}
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Message: message})
}

// ListBooks обрабатывает GET /api/books — вся коллекция
// Пустая коллекция отдаётся как пустой массив со статусом 200, это не ошибка
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	books, err := h.inventory.ListBooks(ctx)
	if err != nil {
		log.Error("List books failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]BookResponse, 0, len(books))
	for _, book := range books {
		resp = append(resp, toResponse(book))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// CreateBook обрабатывает POST /api/books — создание книги
// Проверяется только структурное наличие всех пяти полей;
// сами значения не валидируются (правила формы живут на клиенте)
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	var reqBody BookRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Info("JSON decode error", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if reqBody.Title == nil || reqBody.Author == nil || reqBody.ISBN == nil ||
		reqBody.Quantity == nil || reqBody.Price == nil {
		log.Info("Validation failed: missing required fields")
		h.writeError(w, http.StatusBadRequest, "Invalid payload: title, author, isbn, quantity and price are required")
		return
	}

	created, err := h.inventory.CreateBook(ctx, repository.Book{
		Title:    *reqBody.Title,
		Author:   *reqBody.Author,
		ISBN:     *reqBody.ISBN,
		Quantity: *reqBody.Quantity,
		Price:    *reqBody.Price,
	})
	if err != nil {
		log.Error("Create book failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, toResponse(created))
}

// UpdateBook обрабатывает PUT /api/books/{id} — частичное обновление
// Переносятся только переданные поля; id в теле запроса игнорируется
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	var reqBody BookRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		log.Info("JSON decode error", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.inventory.UpdateBook(ctx, id, repository.BookPatch{
		Title:    reqBody.Title,
		Author:   reqBody.Author,
		ISBN:     reqBody.ISBN,
		Quantity: reqBody.Quantity,
		Price:    reqBody.Price,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Error("Update book failed", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, toResponse(updated))
}

// DeleteBook обрабатывает DELETE /api/books/{id}
// Успех — пустой ответ 204; отсутствующий id — 404
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	log := observability.L(ctx, h.logger)

	if err := h.inventory.DeleteBook(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "Book not found")
			return
		}
		log.Error("Delete book failed", zap.String("id", id), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

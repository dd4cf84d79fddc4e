package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shestoi/bookstore-inventory/internal/repository"
)

// MemoryRepository реализует BookRepository используя in-memory хранилище
// Это единственное авторитетное хранилище сервиса: состояние живёт только
// в памяти процесса и теряется при рестарте
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]repository.Book
	// order хранит ID в порядке вставки, чтобы List был детерминированным
	order []string
}

// NewMemoryRepository создаёт новый in-memory репозиторий
// seed позволяет заполнить хранилище начальными книгами (удобно в тестах);
// книгам из seed без ID идентификатор присваивается как при обычном Create
func NewMemoryRepository(seed ...repository.Book) *MemoryRepository {
	r := &MemoryRepository{
		books: make(map[string]repository.Book, len(seed)),
		order: make([]string, 0, len(seed)),
	}

	for _, book := range seed {
		if book.ID == "" {
			book.ID = uuid.NewString()
		}
		r.insert(book)
	}

	return r
}

// insert добавляет книгу в map и в порядок вставки
// Вызывается только внутри заблокированного мьютекса (или из конструктора)
func (r *MemoryRepository) insert(book repository.Book) {
	if _, exists := r.books[book.ID]; !exists {
		r.order = append(r.order, book.ID)
	}
	r.books[book.ID] = book
}

// List возвращает копию всей коллекции в порядке вставки
// Возвращается именно снимок: дальнейшие мутации хранилища
// не видны через уже отданный slice
func (r *MemoryRepository) List(ctx context.Context) ([]repository.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]repository.Book, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.books[id])
	}

	return result, nil
}

// Create сохраняет новую книгу в памяти, присваивая ей уникальный ID
// ID из входной структуры игнорируется: идентификаторы выдаёт только хранилище
// Защищён мьютексом для безопасного доступа из разных горутин
func (r *MemoryRepository) Create(ctx context.Context, book repository.Book) (repository.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book.ID = uuid.NewString()
	r.insert(book)

	return book, nil
}

// Update накладывает patch на существующую книгу
// Переносятся только переданные (не-nil) поля; ID никогда не меняется
// Read-modify-write выполняется целиком под эксклюзивным мьютексом,
// поэтому частично обновлённую запись увидеть нельзя
func (r *MemoryRepository) Update(ctx context.Context, id string, patch repository.BookPatch) (repository.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[id]
	if !exists {
		return repository.Book{}, repository.ErrNotFound
	}

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

	r.books[id] = book
	return book, nil
}

// Delete удаляет книгу по ID
// Повторный Delete того же ID снова вернёт ErrNotFound, а не тихий успех
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[id]; !exists {
		return repository.ErrNotFound
	}

	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// Reset полностью очищает хранилище
// Используется для изоляции тестов вместо рестарта процесса
func (r *MemoryRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books = make(map[string]repository.Book)
	r.order = r.order[:0]
}

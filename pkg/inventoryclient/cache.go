package inventoryclient

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrMutationInFlight возвращается, когда мутация запрошена, пока другая
// ещё не завершилась. Аналог заблокированной кнопки submit: двойная отправка
// формы не должна породить две записи
var ErrMutationInFlight = errors.New("another mutation is in flight")

// Stats — сводная статистика инвентаря
type Stats struct {
	// TotalBooks — суммарное количество экземпляров
	TotalBooks int
	// TotalValue — суммарная стоимость (цена × количество)
	TotalValue float64
}

// Inventory — клиентская view-модель поверх Client
// Держит локальную копию коллекции: загружает список один раз, после каждой
// успешной мутации правит копию ответом сервера и никогда не перезапрашивает
// список сам. Копия не авторитетна и может разойтись с сервером, если
// хранилище меняет кто-то ещё; Reload существует для явной сверки
type Inventory struct {
	client *Client

	mu       sync.Mutex
	books    []Book
	loaded   bool
	inFlight bool
}

// NewInventory создаёт view-модель поверх готового клиента
func NewInventory(client *Client) *Inventory {
	return &Inventory{client: client}
}

// Load загружает полный список с сервера ровно один раз
// Повторные вызовы после успешной загрузки — no-op
// При ошибке кэш остаётся нетронутым, и Load можно повторить
func (inv *Inventory) Load(ctx context.Context) error {
	inv.mu.Lock()
	if inv.loaded {
		inv.mu.Unlock()
		return nil
	}
	inv.mu.Unlock()

	return inv.Reload(ctx)
}

// Reload безусловно перезапрашивает список с сервера
// Это единственный путь сверки кэша с сервером после мутаций
func (inv *Inventory) Reload(ctx context.Context) error {
	books, err := inv.client.ListBooks(ctx)
	if err != nil {
		return err
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.books = books
	inv.loaded = true
	return nil
}

// Books возвращает копию локального кэша
func (inv *Inventory) Books() []Book {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	result := make([]Book, len(inv.books))
	copy(result, inv.books)
	return result
}

// Search фильтрует локальный кэш без обращения к сети:
// подстрока без учёта регистра по title и author, точная подстрока по ISBN
// Пустой запрос возвращает всё
func (inv *Inventory) Search(term string) []Book {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	lower := strings.ToLower(term)
	result := make([]Book, 0, len(inv.books))
	for _, book := range inv.books {
		if strings.Contains(strings.ToLower(book.Title), lower) ||
			strings.Contains(strings.ToLower(book.Author), lower) ||
			strings.Contains(book.ISBN, term) {
			result = append(result, book)
		}
	}
	return result
}

// Stats считает сводную статистику по локальному кэшу
func (inv *Inventory) Stats() Stats {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	var stats Stats
	for _, book := range inv.books {
		stats.TotalBooks += book.Quantity
		stats.TotalValue += book.Price * float64(book.Quantity)
	}
	return stats
}

// beginMutation захватывает право на единственную незавершённую мутацию
func (inv *Inventory) beginMutation() error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.inFlight {
		return ErrMutationInFlight
	}
	inv.inFlight = true
	return nil
}

// endMutation снимает флаг и, при успехе, применяет apply к кэшу
func (inv *Inventory) endMutation(apply func()) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.inFlight = false
	if apply != nil {
		apply()
	}
}

// Add валидирует поля по правилам формы, создаёт книгу на сервере
// и добавляет в кэш запись из ответа (с авторитетным ID)
// При любой ошибке кэш не меняется
func (inv *Inventory) Add(ctx context.Context, input BookInput) (Book, error) {
	if err := input.Validate(); err != nil {
		return Book{}, err
	}
	if err := inv.beginMutation(); err != nil {
		return Book{}, err
	}

	created, err := inv.client.CreateBook(ctx, input)
	if err != nil {
		inv.endMutation(nil)
		return Book{}, err
	}

	inv.endMutation(func() {
		inv.books = append(inv.books, created)
	})
	return created, nil
}

// Edit валидирует переданные поля, отправляет частичное обновление
// и заменяет в кэше запись с тем же ID версией из ответа сервера
func (inv *Inventory) Edit(ctx context.Context, id string, patch BookPatch) (Book, error) {
	if err := patch.Validate(); err != nil {
		return Book{}, err
	}
	if err := inv.beginMutation(); err != nil {
		return Book{}, err
	}

	updated, err := inv.client.UpdateBook(ctx, id, patch)
	if err != nil {
		inv.endMutation(nil)
		return Book{}, err
	}

	inv.endMutation(func() {
		for i := range inv.books {
			if inv.books[i].ID == updated.ID {
				inv.books[i] = updated
				break
			}
		}
	})
	return updated, nil
}

// Remove удаляет книгу на сервере и выкидывает её из кэша
func (inv *Inventory) Remove(ctx context.Context, id string) error {
	if err := inv.beginMutation(); err != nil {
		return err
	}

	if err := inv.client.DeleteBook(ctx, id); err != nil {
		inv.endMutation(nil)
		return err
	}

	inv.endMutation(func() {
		for i := range inv.books {
			if inv.books[i].ID == id {
				inv.books = append(inv.books[:i], inv.books[i+1:]...)
				break
			}
		}
	})
	return nil
}

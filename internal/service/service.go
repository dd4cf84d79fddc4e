package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shestoi/bookstore-inventory/internal/repository"
)

// InventoryService содержит бизнес-логику работы с книжным инвентарём
// Зависит от интерфейса BookRepository, а не от конкретной реализации,
// поэтому хранилище легко подменяется в тестах
type InventoryService struct {
	repo   repository.BookRepository
	logger *zap.Logger
}

// NewInventoryService создаёт новый экземпляр InventoryService
// Принимает repository и logger как зависимости
func NewInventoryService(repo repository.BookRepository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{
		repo:   repo,
		logger: logger,
	}
}

// ListBooks возвращает снимок всей коллекции
// Пустая коллекция — нормальный результат, не ошибка
func (s *InventoryService) ListBooks(ctx context.Context) ([]repository.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List books failed", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("Listed books", zap.Int("count", len(books)))
	return books, nil
}

// CreateBook сохраняет новую книгу и возвращает её вместе с присвоенным ID
// Значения полей намеренно не проверяются: правила формы (непустой title,
// длина ISBN, неотрицательные числа) живут на клиентской стороне,
// а сервис хранит то, что ему прислали
func (s *InventoryService) CreateBook(ctx context.Context, book repository.Book) (repository.Book, error) {
	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error("Create book failed", zap.Error(err))
		return repository.Book{}, err
	}

	s.logger.Info("Book created",
		zap.String("id", created.ID),
		zap.String("title", created.Title))
	return created, nil
}

// UpdateBook накладывает частичное обновление на существующую книгу
// Возвращает repository.ErrNotFound, если книги с таким ID нет
func (s *InventoryService) UpdateBook(ctx context.Context, id string, patch repository.BookPatch) (repository.Book, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if err == repository.ErrNotFound {
			s.logger.Info("Book not found for update", zap.String("id", id))
		} else {
			s.logger.Error("Update book failed", zap.String("id", id), zap.Error(err))
		}
		return repository.Book{}, err
	}

	s.logger.Info("Book updated", zap.String("id", id))
	return updated, nil
}

// DeleteBook удаляет книгу по ID
// Возвращает repository.ErrNotFound, если книги с таким ID нет;
// повторное удаление того же ID — тоже NotFound, а не тихий успех
func (s *InventoryService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			s.logger.Info("Book not found for delete", zap.String("id", id))
		} else {
			s.logger.Error("Delete book failed", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("Book deleted", zap.String("id", id))
	return nil
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shestoi/bookstore-inventory/internal/repository"
	"github.com/shestoi/bookstore-inventory/internal/repository/memory"
)

func newTestService() (*InventoryService, *memory.MemoryRepository) {
	repo := memory.NewMemoryRepository()
	return NewInventoryService(repo, zap.NewNop()), repo
}

func TestInventoryService_CRUDLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// Пустая коллекция — не ошибка
	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Empty(t, books)

	created, err := svc.CreateBook(ctx, repository.Book{
		Title:    "Dune",
		Author:   "Herbert",
		ISBN:     "9780441013593",
		Quantity: 10,
		Price:    9.99,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	books, err = svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, created, books[0])

	quantity := 3
	updated, err := svc.UpdateBook(ctx, created.ID, repository.BookPatch{Quantity: &quantity})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)
	require.Equal(t, created.Title, updated.Title)
	require.Equal(t, created.ID, updated.ID)

	require.NoError(t, svc.DeleteBook(ctx, created.ID))

	books, err = svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Empty(t, books)
}

func TestInventoryService_NotFoundPropagation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "update nonexistent id",
			call: func() error {
				quantity := 1
				_, err := svc.UpdateBook(ctx, "nonexistent-id", repository.BookPatch{Quantity: &quantity})
				return err
			},
		},
		{
			name: "delete nonexistent id",
			call: func() error {
				return svc.DeleteBook(ctx, "nonexistent-id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.call(), repository.ErrNotFound)
		})
	}
}

func TestInventoryService_UpdateAfterDeleteFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateBook(ctx, repository.Book{Title: "Dune", Author: "Herbert", ISBN: "9780441013593"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteBook(ctx, created.ID))

	quantity := 1
	_, err = svc.UpdateBook(ctx, created.ID, repository.BookPatch{Quantity: &quantity})
	require.ErrorIs(t, err, repository.ErrNotFound)

	// Повторное удаление — тоже NotFound
	require.ErrorIs(t, svc.DeleteBook(ctx, created.ID), repository.ErrNotFound)
}

// failingRepository помогает проверить, что сервис не глотает ошибки хранилища
type failingRepository struct {
	err error
}

func (f *failingRepository) List(ctx context.Context) ([]repository.Book, error) {
	return nil, f.err
}

func (f *failingRepository) Create(ctx context.Context, book repository.Book) (repository.Book, error) {
	return repository.Book{}, f.err
}

func (f *failingRepository) Update(ctx context.Context, id string, patch repository.BookPatch) (repository.Book, error) {
	return repository.Book{}, f.err
}

func (f *failingRepository) Delete(ctx context.Context, id string) error {
	return f.err
}

func TestInventoryService_RepositoryErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	repoErr := errors.New("storage exploded")
	svc := NewInventoryService(&failingRepository{err: repoErr}, zap.NewNop())

	_, err := svc.ListBooks(ctx)
	require.ErrorIs(t, err, repoErr)

	_, err = svc.CreateBook(ctx, repository.Book{})
	require.ErrorIs(t, err, repoErr)

	_, err = svc.UpdateBook(ctx, "id", repository.BookPatch{})
	require.ErrorIs(t, err, repoErr)

	require.ErrorIs(t, svc.DeleteBook(ctx, "id"), repoErr)
}

package repository

import (
	"context"
	"errors"
)

// Book представляет доменную модель книги в инвентаре
// Это бизнес-сущность, не привязанная к HTTP или конкретному хранилищу
type Book struct {
	ID       string
	Title    string
	Author   string
	ISBN     string
	Quantity int
	Price    float64
}

// BookPatch представляет частичное обновление книги
// nil означает "поле не передано, оставить прежнее значение"
// ID намеренно отсутствует: идентификатор неизменяем после создания
type BookPatch struct {
	Title    *string
	Author   *string
	ISBN     *string
	Quantity *int
	Price    *float64
}

// BookRepository определяет интерфейс для работы с хранилищем книг
// Service слой зависит от этого интерфейса, а не от конкретной реализации
type BookRepository interface {
	// List возвращает снимок всей коллекции на момент вызова
	List(ctx context.Context) ([]Book, error)

	// Create сохраняет новую книгу, присваивая ей уникальный ID,
	// и возвращает сохранённую запись вместе с этим ID
	Create(ctx context.Context, book Book) (Book, error)

	// Update накладывает patch на существующую книгу
	// Возвращает ErrNotFound, если книга не найдена
	Update(ctx context.Context, id string, patch BookPatch) (Book, error)

	// Delete удаляет книгу по ID
	// Возвращает ErrNotFound, если книга не найдена
	Delete(ctx context.Context, id string) error
}

// ErrNotFound возвращается, когда книга не найдена в хранилище
var ErrNotFound = errors.New("book not found")

package service

import (
	"context"

	"github.com/xxxsen/bookies/internal/model"
)

// UserStore is the credential store; repo.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// BookStore is the book repository; repo.BookRepo satisfies it.
type BookStore interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, bookID string) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	Update(ctx context.Context, bookID, ownerEmail string, patch model.BookPatch) error
	Delete(ctx context.Context, bookID, ownerEmail string) error
	AppendReview(ctx context.Context, bookID, review string) error
}

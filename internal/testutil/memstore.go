package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/xxxsen/bookies/internal/model"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
)

// MemUserStore is an in-memory stand-in for repo.UserRepo.
type MemUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[string]model.User)}
}

func (s *MemUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return appErr.ErrConflict
	}
	s.users[user.Email] = *user
	return nil
}

func (s *MemUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return &user, nil
}

func (s *MemUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

func (s *MemUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// MemBookStore is an in-memory stand-in for repo.BookRepo with the same
// matching rules as the SQL queries.
type MemBookStore struct {
	mu    sync.Mutex
	books map[string]model.Book
}

func NewMemBookStore() *MemBookStore {
	return &MemBookStore{books: make(map[string]model.Book)}
}

func (s *MemBookStore) Create(_ context.Context, book *model.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[book.ID]; ok {
		return appErr.ErrConflict
	}
	s.books[book.ID] = cloneBook(*book)
	return nil
}

func (s *MemBookStore) GetByID(_ context.Context, bookID string) (*model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	out := cloneBook(book)
	return &out, nil
}

func (s *MemBookStore) List(_ context.Context, filter model.BookFilter) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Book, 0)
	search := strings.ToLower(filter.Search)
	for _, book := range s.books {
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) &&
			!strings.Contains(strings.ToLower(book.Genre), search) {
			continue
		}
		if filter.Genre != "" && book.Genre != filter.Genre {
			continue
		}
		if filter.PublicationYear != "" && !strings.Contains(book.PublicationDate, filter.PublicationYear) {
			continue
		}
		out = append(out, cloneBook(book))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PublishedDate == out[j].PublishedDate {
			if filter.Order == model.BookOrderNewest {
				return out[i].ID > out[j].ID
			}
			return out[i].ID < out[j].ID
		}
		if filter.Order == model.BookOrderNewest {
			return out[i].PublishedDate > out[j].PublishedDate
		}
		return out[i].PublishedDate < out[j].PublishedDate
	})
	if filter.Limit > 0 && uint(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemBookStore) Update(_ context.Context, bookID, ownerEmail string, patch model.BookPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.IsEmpty() {
		return nil
	}
	book, ok := s.books[bookID]
	if !ok || book.OwnerEmail != ownerEmail {
		return appErr.ErrNotFound
	}
	patch.Apply(&book)
	s.books[bookID] = book
	return nil
}

func (s *MemBookStore) Delete(_ context.Context, bookID, ownerEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok || book.OwnerEmail != ownerEmail {
		return appErr.ErrNotFound
	}
	delete(s.books, bookID)
	return nil
}

func (s *MemBookStore) AppendReview(_ context.Context, bookID, review string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	book, ok := s.books[bookID]
	if !ok {
		return appErr.ErrNotFound
	}
	book.Reviews = append(append([]string{}, book.Reviews...), review)
	s.books[bookID] = book
	return nil
}

func cloneBook(book model.Book) model.Book {
	reviews := make([]string, len(book.Reviews))
	copy(reviews, book.Reviews)
	book.Reviews = reviews
	return book
}

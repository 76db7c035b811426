package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/bookies/internal/model"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/pkg/timeutil"
)

// RecentLimit caps the recent listing.
const RecentLimit = 10

// Access is the outcome of the ownership gate in front of update and delete.
type Access int

const (
	AccessAuthorized Access = iota
	AccessNotFound
	AccessForbidden
)

func (a Access) String() string {
	switch a {
	case AccessAuthorized:
		return "authorized"
	case AccessNotFound:
		return "not_found"
	case AccessForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

func (a Access) Err() error {
	switch a {
	case AccessAuthorized:
		return nil
	case AccessNotFound:
		return appErr.ErrNotFound
	default:
		return appErr.ErrForbidden
	}
}

type BookService struct {
	books BookStore
}

func NewBookService(books BookStore) *BookService {
	return &BookService{books: books}
}

type BookCreateInput struct {
	Title           string
	Author          string
	Genre           string
	PublicationDate string
}

type BookQuery struct {
	Search          string
	Genre           string
	PublicationYear string
	Recent          bool
}

func (q BookQuery) filter() model.BookFilter {
	f := model.BookFilter{
		Search:          strings.TrimSpace(q.Search),
		Genre:           strings.TrimSpace(q.Genre),
		PublicationYear: strings.TrimSpace(q.PublicationYear),
		Order:           model.BookOrderOldest,
	}
	if q.Recent {
		f.Order = model.BookOrderNewest
		f.Limit = RecentLimit
	}
	return f
}

func (s *BookService) Add(ctx context.Context, ownerEmail string, input BookCreateInput) (*model.Book, error) {
	if ownerEmail == "" {
		return nil, appErr.ErrUnauthorized
	}
	book := &model.Book{
		ID:              newID(),
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		PublicationDate: input.PublicationDate,
		PublishedDate:   timeutil.NowUnixMilli(),
		OwnerEmail:      ownerEmail,
		Reviews:         []string{},
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	logutil.GetLogger(ctx).Info("book added", zap.String("book_id", book.ID), zap.String("owner", ownerEmail))
	return book, nil
}

func (s *BookService) List(ctx context.Context, query BookQuery) ([]model.Book, error) {
	return s.books.List(ctx, query.filter())
}

func (s *BookService) Get(ctx context.Context, bookID string) (*model.Book, error) {
	return s.books.GetByID(ctx, bookID)
}

// Authorize checks, in order, that the book exists and that identity owns it.
func (s *BookService) Authorize(ctx context.Context, bookID, identity string) (*model.Book, Access, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, appErr.ErrNotFound) {
			return nil, AccessNotFound, nil
		}
		return nil, AccessNotFound, err
	}
	if identity == "" || book.OwnerEmail != identity {
		return book, AccessForbidden, nil
	}
	return book, AccessAuthorized, nil
}

func (s *BookService) Update(ctx context.Context, bookID, identity string, patch model.BookPatch) (*model.Book, error) {
	book, access, err := s.Authorize(ctx, bookID, identity)
	if err != nil {
		return nil, err
	}
	if access != AccessAuthorized {
		s.logDenied(ctx, "update", bookID, identity, access)
		return nil, access.Err()
	}
	if patch.IsEmpty() {
		return book, nil
	}
	if err := s.books.Update(ctx, bookID, identity, patch); err != nil {
		return nil, err
	}
	return s.books.GetByID(ctx, bookID)
}

// Delete removes the book and returns its last state.
func (s *BookService) Delete(ctx context.Context, bookID, identity string) (*model.Book, error) {
	book, access, err := s.Authorize(ctx, bookID, identity)
	if err != nil {
		return nil, err
	}
	if access != AccessAuthorized {
		s.logDenied(ctx, "delete", bookID, identity, access)
		return nil, access.Err()
	}
	if err := s.books.Delete(ctx, bookID, identity); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("book deleted", zap.String("book_id", bookID), zap.String("owner", identity))
	return book, nil
}

func (s *BookService) AppendReview(ctx context.Context, bookID, review string) error {
	if strings.TrimSpace(review) == "" {
		return appErr.ErrInvalid
	}
	return s.books.AppendReview(ctx, bookID, review)
}

func (s *BookService) logDenied(ctx context.Context, op, bookID, identity string, access Access) {
	logutil.GetLogger(ctx).Warn("book mutation denied",
		zap.String("op", op),
		zap.String("book_id", bookID),
		zap.String("identity", identity),
		zap.String("access", access.String()),
	)
}

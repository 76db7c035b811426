package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"
	"github.com/lib/pq"

	"github.com/xxxsen/bookies/internal/model"
	"github.com/xxxsen/bookies/internal/pkg/dbutil"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
)

var bookColumns = []string{"id", "title", "author", "genre", "publication_date", "published_at", "owner_email", "reviews"}

type BookRepo struct {
	db *sql.DB
}

func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db}
}

func (r *BookRepo) Create(ctx context.Context, book *model.Book) error {
	if book.Reviews == nil {
		book.Reviews = []string{}
	}
	data := map[string]interface{}{
		"id":               book.ID,
		"title":            book.Title,
		"author":           book.Author,
		"genre":            book.Genre,
		"publication_date": book.PublicationDate,
		"published_at":     book.PublishedDate,
		"owner_email":      book.OwnerEmail,
		"reviews":          pq.Array(book.Reviews),
	}
	sqlStr, args, err := builder.BuildInsert("books", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *BookRepo) GetByID(ctx context.Context, bookID string) (*model.Book, error) {
	where := map[string]interface{}{"id": bookID}
	sqlStr, args, err := builder.BuildSelect("books", where, bookColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	books, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, appErr.ErrNotFound
	}
	return &books[0], nil
}

// List runs a single query for the filter; sort order and limit come from
// the filter itself.
func (r *BookRepo) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	sqlStr, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanBooks(rows)
}

func buildListQuery(filter model.BookFilter) (string, []interface{}, error) {
	where := map[string]interface{}{}
	if filter.Search != "" {
		like := dbutil.ContainsPattern(filter.Search)
		where["_custom_search"] = builder.Custom("(title ILIKE ? OR author ILIKE ? OR genre ILIKE ?)", like, like, like)
	}
	if filter.Genre != "" {
		where["genre"] = filter.Genre
	}
	if filter.PublicationYear != "" {
		where["_custom_year"] = builder.Custom("publication_date LIKE ?", dbutil.ContainsPattern(filter.PublicationYear))
	}
	switch filter.Order {
	case model.BookOrderNewest:
		where["_orderby"] = "published_at desc, id desc"
	default:
		where["_orderby"] = "published_at asc, id asc"
	}
	if filter.Limit > 0 {
		where["_limit"] = []uint{0, filter.Limit}
	}
	sqlStr, args, err := builder.BuildSelect("books", where, bookColumns)
	if err != nil {
		return "", nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	return sqlStr, args, nil
}

// Update writes only the fields set in patch on the owner's book.
func (r *BookRepo) Update(ctx context.Context, bookID, ownerEmail string, patch model.BookPatch) error {
	update := map[string]interface{}{}
	if patch.Title != nil {
		update["title"] = *patch.Title
	}
	if patch.Author != nil {
		update["author"] = *patch.Author
	}
	if patch.Genre != nil {
		update["genre"] = *patch.Genre
	}
	if patch.PublicationDate != nil {
		update["publication_date"] = *patch.PublicationDate
	}
	if len(update) == 0 {
		return nil
	}
	where := map[string]interface{}{
		"id":          bookID,
		"owner_email": ownerEmail,
	}
	sqlStr, args, err := builder.BuildUpdate("books", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *BookRepo) Delete(ctx context.Context, bookID, ownerEmail string) error {
	where := map[string]interface{}{
		"id":          bookID,
		"owner_email": ownerEmail,
	}
	sqlStr, args, err := builder.BuildDelete("books", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (r *BookRepo) AppendReview(ctx context.Context, bookID, review string) error {
	sqlStr, args := dbutil.Finalize("UPDATE books SET reviews = array_append(reviews, ?) WHERE id = ?", []interface{}{review, bookID})
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	books := make([]model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Genre, &book.PublicationDate, &book.PublishedDate, &book.OwnerEmail, pq.Array(&book.Reviews)); err != nil {
			return nil, err
		}
		if book.Reviews == nil {
			book.Reviews = []string{}
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

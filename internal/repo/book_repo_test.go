package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/bookies/internal/model"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/repo"
	"github.com/xxxsen/bookies/internal/testutil"
)

func TestBookRepoCRUDAndOwnership(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	books := repo.NewBookRepo(db)
	ctx := context.Background()
	book := &model.Book{
		ID:              "book-1",
		Title:           "Tehanu",
		Author:          "Ursula K. Le Guin",
		Genre:           "Fantasy",
		PublicationDate: "1990",
		PublishedDate:   1000,
		OwnerEmail:      "owner@x.com",
	}
	require.NoError(t, books.Create(ctx, book))

	fetched, err := books.GetByID(ctx, "book-1")
	require.NoError(t, err)
	require.Equal(t, book, fetched)

	_, err = books.GetByID(ctx, "not-a-real-key")
	require.ErrorIs(t, err, appErr.ErrNotFound)

	title := "Tehanu (revised)"
	err = books.Update(ctx, "book-1", "other@x.com", model.BookPatch{Title: &title})
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.NoError(t, books.Update(ctx, "book-1", "owner@x.com", model.BookPatch{Title: &title}))

	fetched, err = books.GetByID(ctx, "book-1")
	require.NoError(t, err)
	require.Equal(t, title, fetched.Title)
	require.Equal(t, "Fantasy", fetched.Genre)

	require.NoError(t, books.AppendReview(ctx, "book-1", "first"))
	require.NoError(t, books.AppendReview(ctx, "book-1", "second"))
	require.ErrorIs(t, books.AppendReview(ctx, "missing", "x"), appErr.ErrNotFound)
	fetched, err = books.GetByID(ctx, "book-1")
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, fetched.Reviews)

	require.ErrorIs(t, books.Delete(ctx, "book-1", "other@x.com"), appErr.ErrNotFound)
	require.NoError(t, books.Delete(ctx, "book-1", "owner@x.com"))
	_, err = books.GetByID(ctx, "book-1")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestBookRepoListFilters(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	books := repo.NewBookRepo(db)
	ctx := context.Background()
	seed := []model.Book{
		{ID: "b1", Title: "Dragonflight", Author: "Anne McCaffrey", Genre: "Fantasy", PublicationDate: "1968", PublishedDate: 1},
		{ID: "b2", Title: "Dune", Author: "Frank Herbert", Genre: "SciFi", PublicationDate: "1965", PublishedDate: 2},
		{ID: "b3", Title: "100% Dragons", Author: "Anon", Genre: "Fantasy", PublicationDate: "2001", PublishedDate: 3},
		{ID: "b4", Title: "Dragon Rider", Author: "Cornelia Funke", Genre: "Children", PublicationDate: "1997", PublishedDate: 4},
	}
	for i := range seed {
		seed[i].OwnerEmail = "owner@x.com"
		require.NoError(t, books.Create(ctx, &seed[i]))
	}
	ids := func(list []model.Book) []string {
		out := make([]string, 0, len(list))
		for _, b := range list {
			out = append(out, b.ID)
		}
		return out
	}

	got, err := books.List(ctx, model.BookFilter{Genre: "Fantasy", Search: "DRAGON"})
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b3"}, ids(got))

	got, err = books.List(ctx, model.BookFilter{Search: "100%"})
	require.NoError(t, err)
	require.Equal(t, []string{"b3"}, ids(got))

	got, err = books.List(ctx, model.BookFilter{PublicationYear: "196"})
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b2"}, ids(got))

	got, err = books.List(ctx, model.BookFilter{Order: model.BookOrderNewest, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"b4", "b3"}, ids(got))
}

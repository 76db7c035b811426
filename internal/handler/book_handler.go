package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bookies/internal/model"
	"github.com/xxxsen/bookies/internal/pkg/errcode"
	appErr "github.com/xxxsen/bookies/internal/pkg/errors"
	"github.com/xxxsen/bookies/internal/pkg/response"
	"github.com/xxxsen/bookies/internal/service"
)

type BookHandler struct {
	books *service.BookService
}

func NewBookHandler(books *service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Genre           string `json:"genre"`
	PublicationDate string `json:"publicationDate"`
}

type reviewRequest struct {
	Review string `json:"review"`
}

func (h *BookHandler) Add(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	book, err := h.books.Add(c.Request.Context(), getIdentity(c), service.BookCreateInput{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationDate: req.PublicationDate,
	})
	if err != nil {
		// store failures, conflicts included, are reported as not added.
		if errors.Is(err, appErr.ErrUnauthorized) || errors.Is(err, appErr.ErrInvalid) {
			handleError(c, err)
			return
		}
		logFailure(c, err)
		response.Error(c, http.StatusBadRequest, errcode.ErrBookNotAdded, "book not added")
		return
	}
	response.Success(c, gin.H{"book": book})
}

func (h *BookHandler) List(c *gin.Context) {
	recent, _ := strconv.ParseBool(c.Query("recent"))
	books, err := h.books.List(c.Request.Context(), service.BookQuery{
		Search:          c.Query("search"),
		Genre:           c.Query("genre"),
		PublicationYear: c.Query("publicationYear"),
		Recent:          recent,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"books": books})
}

func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.books.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

func (h *BookHandler) Update(c *gin.Context) {
	var patch model.BookPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	book, err := h.books.Update(c.Request.Context(), c.Param("id"), getIdentity(c), patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

func (h *BookHandler) Delete(c *gin.Context) {
	book, err := h.books.Delete(c.Request.Context(), c.Param("id"), getIdentity(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"book": book})
}

func (h *BookHandler) AddReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.books.AppendReview(c.Request.Context(), c.Param("id"), req.Review); err != nil {
		if !errors.Is(err, appErr.ErrNotFound) {
			handleError(c, err)
			return
		}
		logFailure(c, err)
		response.Error(c, http.StatusNotFound, errcode.ErrReviewNotAdded, "book not found or review not added")
		return
	}
	response.Success(c, gin.H{"ok": true})
}

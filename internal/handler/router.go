package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bookies/internal/middleware"
)

type RouterDeps struct {
	Auth     *AuthHandler
	Books    *BookHandler
	Home     *HomeHandler
	Verifier middleware.TokenVerifier
}

func RegisterRoutes(api gin.IRouter, deps RouterDeps) {
	api.GET("/", deps.Home.Banner)

	api.POST("/auth/signup", deps.Auth.Signup)
	api.POST("/auth/login", deps.Auth.Login)

	api.GET("/all-books", deps.Books.List)
	api.GET("/books/:id", deps.Books.Get)
	api.POST("/books/reviews/:id", deps.Books.AddReview)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.Verifier))
	authGroup.POST("/books/add-book", deps.Books.Add)
	authGroup.PUT("/books/:id", deps.Books.Update)
	authGroup.DELETE("/books/:id", deps.Books.Delete)
}

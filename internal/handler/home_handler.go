package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/bookies/internal/pkg/response"
)

const banner = "Bookies App"

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

func (h *HomeHandler) Banner(c *gin.Context) {
	response.Text(c, banner)
}

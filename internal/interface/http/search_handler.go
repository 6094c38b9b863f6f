package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/internal/application"
	"github.com/oksasatya/giftlink/internal/domain/entity"
)

type SearchService interface {
	Search(ctx context.Context, p application.SearchParams) ([]entity.Gift, error)
	TextSearch(ctx context.Context, q string, size int) ([]entity.Gift, error)
}

type SearchHandler struct {
	Svc    SearchService
	Logger *logrus.Logger
}

func NewSearchHandler(svc SearchService, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{Svc: svc, Logger: logger}
}

// Search GET /api/search?name=&category=&condition=&age_years=
func (h *SearchHandler) Search(c *gin.Context) {
	gifts, err := h.Svc.Search(c.Request.Context(), application.SearchParams{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		AgeYears:  c.Query("age_years"),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

// Text GET /api/search/text?q=&size=
func (h *SearchHandler) Text(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	gifts, err := h.Svc.TextSearch(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

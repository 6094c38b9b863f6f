package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/internal/sentiment"
	"github.com/oksasatya/giftlink/pkg/response"
	"github.com/oksasatya/giftlink/pkg/validation"
)

type SentimentAnalyzer interface {
	Analyze(sentence string) sentiment.Result
}

type SentimentHandler struct {
	Analyzer SentimentAnalyzer
	Logger   *logrus.Logger
}

func NewSentimentHandler(a SentimentAnalyzer, logger *logrus.Logger) *SentimentHandler {
	return &SentimentHandler{Analyzer: a, Logger: logger}
}

// Analyze POST /sentiment?sentence=
func (h *SentimentHandler) Analyze(c *gin.Context) {
	sentence := c.Query("sentence")
	if strings.TrimSpace(sentence) == "" {
		h.Logger.Error("no valid sentence provided")
		response.Abort(c, http.StatusBadRequest, "No valid sentence provided", []validation.FieldViolation{{
			Field: "sentence", Tag: "required", Message: "is required",
		}})
		return
	}
	res := h.Analyzer.Analyze(sentence)
	h.Logger.WithFields(logrus.Fields{"score": res.Score, "sentiment": res.Sentiment}).Info("sentiment analyzed")
	c.JSON(http.StatusOK, res)
}

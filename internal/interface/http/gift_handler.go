package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/internal/application"
	"github.com/oksasatya/giftlink/internal/domain/entity"
	"github.com/oksasatya/giftlink/pkg/response"
	"github.com/oksasatya/giftlink/pkg/validation"
)

const maxImageBytes = 5 << 20

type GiftService interface {
	List(ctx context.Context) ([]entity.Gift, error)
	Get(ctx context.Context, id string) (*entity.Gift, error)
	Add(ctx context.Context, in application.GiftInput) (*entity.Gift, error)
	UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Gift, error)
}

type GiftHandler struct {
	Svc    GiftService
	Logger *logrus.Logger
}

func NewGiftHandler(svc GiftService, logger *logrus.Logger) *GiftHandler {
	return &GiftHandler{Svc: svc, Logger: logger}
}

// List GET /api/gifts
func (h *GiftHandler) List(c *gin.Context) {
	gifts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gifts)
}

// Get GET /api/gifts/:id
func (h *GiftHandler) Get(c *gin.Context) {
	g, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Add POST /api/gifts. Fields outside the gift schema are rejected.
func (h *GiftHandler) Add(c *gin.Context) {
	var in application.GiftInput
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		invalidPayload(c, err)
		return
	}
	if dec.More() {
		response.Abort(c, http.StatusBadRequest, "invalid payload", []validation.FieldViolation{{
			Field: "payload", Tag: "single", Message: "must be a single JSON object",
		}})
		return
	}
	g, err := h.Svc.Add(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Gift added successfully", "gift": g})
}

// UploadImage POST /api/gifts/:id/image (auth required, multipart field "file")
func (h *GiftHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Abort(c, http.StatusBadRequest, "validation failed", []validation.FieldViolation{{
			Field: "file", Tag: "required", Message: "is required",
		}})
		return
	}
	if fh.Size > maxImageBytes {
		response.Abort(c, http.StatusBadRequest, "validation failed", []validation.FieldViolation{{
			Field: "file", Tag: "max", Message: "must be at most 5MB",
		}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	g, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": g.Image})
}

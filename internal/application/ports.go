package application

import (
	"context"
	"io"

	"github.com/oksasatya/giftlink/internal/domain/entity"
)

// EmailQueue accepts email jobs for asynchronous delivery.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// GiftIndexer keeps a full-text index of gifts.
type GiftIndexer interface {
	IndexGift(ctx context.Context, g *entity.Gift) error
	SearchGifts(ctx context.Context, q string, size int) ([]entity.Gift, error)
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	repo "github.com/oksasatya/giftlink/internal/domain/repository"
	"github.com/oksasatya/giftlink/pkg/validation"
)

// GiftService lists, fetches and adds gifts.
type GiftService struct {
	Repo    repo.GiftRepository
	Logger  *logrus.Logger
	Indexer GiftIndexer // optional
	Images  ImageStore  // optional

	validate *validator.Validate
	now      func() time.Time
}

func NewGiftService(repo repo.GiftRepository, logger *logrus.Logger) *GiftService {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &GiftService{
		Repo:     repo,
		Logger:   logger,
		validate: validation.New(),
		now:      time.Now,
	}
}

// GiftInput is the accepted shape of a new gift. Unknown fields are rejected
// at decode time; date_added is always set by the server.
type GiftInput struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Condition   string  `json:"condition" validate:"required"`
	PostedBy    string  `json:"posted_by"`
	Zipcode     string  `json:"zipcode"`
	AgeDays     int     `json:"age_days" validate:"gte=0"`
	AgeYears    float64 `json:"age_years" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// List returns every gift. An empty collection is reported as ErrNoGifts.
func (s *GiftService) List(ctx context.Context) ([]entity.Gift, error) {
	gifts, err := s.Repo.Find(ctx, entity.GiftFilter{})
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	if len(gifts) == 0 {
		return nil, ErrNoGifts
	}
	return gifts, nil
}

// Get returns the gift with the given hex id.
func (s *GiftService) Get(ctx context.Context, id string) (*entity.Gift, error) {
	oid, err := parseGiftID(id)
	if err != nil {
		return nil, err
	}
	g, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("get gift: %w", err)
	}
	return g, nil
}

// Add validates and stores a new gift, stamping date_added.
func (s *GiftService) Add(ctx context.Context, in GiftInput) (*entity.Gift, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, newValidationError(err)
	}
	g := &entity.Gift{
		Name:        in.Name,
		Category:    in.Category,
		Condition:   in.Condition,
		PostedBy:    in.PostedBy,
		Zipcode:     in.Zipcode,
		DateAdded:   s.now().Unix(),
		AgeDays:     in.AgeDays,
		AgeYears:    in.AgeYears,
		Description: in.Description,
		Image:       in.Image,
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create gift: %w", err)
	}
	s.index(ctx, g)
	s.Logger.WithFields(logrus.Fields{"gift_id": g.ID.Hex(), "name": g.Name}).Info("gift added")
	return g, nil
}

// UploadImage stores an image for an existing gift and records its URL.
func (s *GiftService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.Gift, error) {
	if s.Images == nil {
		return nil, ErrStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fieldError("image", "image", contentType, "must be an image")
	}
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	object := path.Join("gifts", g.ID.Hex(), uuid.NewString()+strings.ToLower(path.Ext(filename)))
	url, err := s.Images.Upload(ctx, object, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	if err := s.Repo.SetImage(ctx, g.ID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGiftNotFound
		}
		return nil, fmt.Errorf("set gift image: %w", err)
	}
	g.Image = url
	s.index(ctx, g)
	s.Logger.WithFields(logrus.Fields{"gift_id": g.ID.Hex(), "object": object}).Info("gift image uploaded")
	return g, nil
}

// index is best effort; the document store stays the source of truth.
func (s *GiftService) index(ctx context.Context, g *entity.Gift) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.IndexGift(ctx, g); err != nil {
		s.Logger.WithError(err).WithField("gift_id", g.ID.Hex()).Warn("index gift failed")
	}
}

func parseGiftID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fieldError("id", "objectid", id, "must be a valid id")
	}
	return oid, nil
}

package application

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	repo "github.com/oksasatya/giftlink/internal/domain/repository"
)

const (
	defaultTextSearchSize = 10
	maxTextSearchSize     = 50
)

// SearchParams are the raw query-string values of a gift search.
type SearchParams struct {
	Name      string
	Category  string
	Condition string
	AgeYears  string
}

type SearchService struct {
	Repo    repo.GiftRepository
	Indexer GiftIndexer // optional, enables TextSearch
	Logger  *logrus.Logger
}

func NewSearchService(repo repo.GiftRepository, logger *logrus.Logger) *SearchService {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &SearchService{Repo: repo, Logger: logger}
}

// BuildFilter turns query parameters into a gift filter. Empty parameters
// (and a blank name) contribute no clause; an age that does not start with
// an integer is ignored.
func BuildFilter(p SearchParams) entity.GiftFilter {
	f := entity.GiftFilter{
		NameContains: strings.TrimSpace(p.Name),
		Category:     p.Category,
		Condition:    p.Condition,
	}
	if age, ok := leadingInt(p.AgeYears); ok {
		f.MaxAgeYears = &age
	}
	return f
}

// Search returns every gift matching all supplied criteria.
func (s *SearchService) Search(ctx context.Context, p SearchParams) ([]entity.Gift, error) {
	gifts, err := s.Repo.Find(ctx, BuildFilter(p))
	if err != nil {
		return nil, fmt.Errorf("search gifts: %w", err)
	}
	if gifts == nil {
		gifts = []entity.Gift{}
	}
	return gifts, nil
}

// TextSearch runs a relevance-ranked full-text query over indexed gifts.
func (s *SearchService) TextSearch(ctx context.Context, q string, size int) ([]entity.Gift, error) {
	if s.Indexer == nil {
		return nil, ErrSearchUnavailable
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fieldError("q", "required", "", "is required")
	}
	if size <= 0 {
		size = defaultTextSearchSize
	}
	if size > maxTextSearchSize {
		size = maxTextSearchSize
	}
	gifts, err := s.Indexer.SearchGifts(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("text search: %w", err)
	}
	if gifts == nil {
		gifts = []entity.Gift{}
	}
	return gifts, nil
}

// leadingInt parses an optional sign and the digits that follow it after
// leading whitespace, ignoring anything after the digits ("3.5" -> 3).
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

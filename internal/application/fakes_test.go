package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/giftlink/internal/domain/entity"
	repo "github.com/oksasatya/giftlink/internal/domain/repository"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*entity.User
	failWith  error
	missOnSet bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicate
	}
	u.ID = bson.NewObjectID()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id bson.ObjectID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateFirstName(_ context.Context, email, firstName string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok || r.missOnSet {
		return nil, repo.ErrNotFound
	}
	u.FirstName = firstName
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

type fakeGiftRepo struct {
	mu    sync.Mutex
	gifts []entity.Gift
	err   error
}

func (r *fakeGiftRepo) Create(_ context.Context, g *entity.Gift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	g.ID = bson.NewObjectID()
	r.gifts = append(r.gifts, *g)
	return nil
}

func (r *fakeGiftRepo) GetByID(_ context.Context, id bson.ObjectID) (*entity.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gifts {
		if g.ID == id {
			cp := g
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeGiftRepo) Find(_ context.Context, f entity.GiftFilter) ([]entity.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Gift
	for _, g := range r.gifts {
		if f.NameContains != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		if f.Condition != "" && g.Condition != f.Condition {
			continue
		}
		if f.MaxAgeYears != nil && g.AgeYears > float64(*f.MaxAgeYears) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGiftRepo) SetImage(_ context.Context, id bson.ObjectID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.gifts {
		if r.gifts[i].ID == id {
			r.gifts[i].Image = url
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeQueue struct {
	jobs []any
	err  error
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, body)
	return nil
}

type fakeIndexer struct {
	indexed []entity.Gift
	hits    []entity.Gift
	gotQ    string
	gotSize int
	err     error
}

func (i *fakeIndexer) IndexGift(_ context.Context, g *entity.Gift) error {
	if i.err != nil {
		return i.err
	}
	i.indexed = append(i.indexed, *g)
	return nil
}

func (i *fakeIndexer) SearchGifts(_ context.Context, q string, size int) ([]entity.Gift, error) {
	i.gotQ, i.gotSize = q, size
	return i.hits, i.err
}

type fakeImages struct {
	object      string
	contentType string
	body        string
}

func (f *fakeImages) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.object, f.contentType, f.body = objectPath, contentType, string(b)
	return "https://storage.googleapis.com/test-bucket/" + objectPath, nil
}

var errStoreDown = errors.New("store down")

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/giftlink/internal/application"
	"github.com/oksasatya/giftlink/internal/domain/entity"
	"github.com/oksasatya/giftlink/internal/domain/repository"
	"github.com/oksasatya/giftlink/internal/interface/middleware"
	"github.com/oksasatya/giftlink/internal/sentiment"
	"github.com/oksasatya/giftlink/pkg/helpers"
	"github.com/oksasatya/giftlink/pkg/validation"
)

func init() { gin.SetMode(gin.TestMode) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type envelope struct {
	Status  int                         `json:"status"`
	Success bool                        `json:"success"`
	Message string                      `json:"message"`
	Error   []validation.FieldViolation `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func do(r http.Handler, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- auth ----

type stubAuth struct {
	registerErr error
	loginErr    error
	updateErr   error
	profileErr  error

	gotUpdateCaller string
	gotUpdateEmail  string
	gotUpdateName   string
	gotProfileID    string
}

func (s *stubAuth) Register(_ context.Context, in application.RegisterInput) (*application.AuthResult, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &application.AuthResult{Token: "t1", Email: in.Email}, nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (*application.AuthResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &application.AuthResult{Token: "t2", Email: email, FirstName: "A"}, nil
}

func (s *stubAuth) UpdateOwnProfile(_ context.Context, callerID, email, name string) (*application.AuthResult, error) {
	s.gotUpdateCaller, s.gotUpdateEmail, s.gotUpdateName = callerID, email, name
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &application.AuthResult{Token: "t3"}, nil
}

func (s *stubAuth) GetProfile(_ context.Context, userID string) (*entity.User, error) {
	s.gotProfileID = userID
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	id, _ := bson.ObjectIDFromHex(userID)
	return &entity.User{ID: id, Email: "a@x.com", FirstName: "A2", LastName: "B", CreatedAt: time.Unix(0, 0).UTC()}, nil
}

func authRouter(svc AuthService) *gin.Engine {
	h := NewAuthHandler(svc, quietLogger())
	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	asCaller := func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, "65f0c0ffee0000000000abcd") }
	r.PUT("/update", asCaller, h.Update)
	r.GET("/profile", asCaller, h.Profile)
	return r
}

func TestRegisterHandler(t *testing.T) {
	r := authRouter(&stubAuth{})
	w := do(r, http.MethodPost, "/register", strings.NewReader(`{"email":"a@x.com","password":"secret1","firstName":"A","lastName":"B"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authToken":"t1","email":"a@x.com"}`, w.Body.String())
}

func TestRegisterHandler_Errors(t *testing.T) {
	violations := []validation.FieldViolation{{Field: "email", Tag: "email", Message: "must be a valid email"}}
	cases := []struct {
		name   string
		err    error
		body   string
		status int
	}{
		{"validation", &application.ValidationError{Violations: violations}, `{}`, http.StatusBadRequest},
		{"duplicate", application.ErrDuplicateUser, `{}`, http.StatusBadRequest},
		{"store fault", errors.New("boom"), `{}`, http.StatusInternalServerError},
		{"malformed json", nil, `{"email":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := authRouter(&stubAuth{registerErr: tc.err})
			w := do(r, http.MethodPost, "/register", strings.NewReader(tc.body), nil)
			assert.Equal(t, tc.status, w.Code)
			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tc.status, env.Status)
		})
	}

	w := do(authRouter(&stubAuth{registerErr: &application.ValidationError{Violations: violations}}),
		http.MethodPost, "/register", strings.NewReader(`{}`), nil)
	assert.Equal(t, violations, decodeEnvelope(t, w).Error)

	w = do(authRouter(&stubAuth{registerErr: errors.New("mongo: connection refused")}),
		http.MethodPost, "/register", strings.NewReader(`{}`), nil)
	assert.NotContains(t, w.Body.String(), "mongo")
}

func TestLoginHandler(t *testing.T) {
	w := do(authRouter(&stubAuth{}), http.MethodPost, "/login", strings.NewReader(`{"email":"a@x.com","password":"secret1"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authToken":"t2","userName":"A","userEmail":"a@x.com"}`, w.Body.String())

	w = do(authRouter(&stubAuth{loginErr: application.ErrUserNotFound}), http.MethodPost, "/login", strings.NewReader(`{}`), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(authRouter(&stubAuth{loginErr: application.ErrInvalidCredentials}), http.MethodPost, "/login", strings.NewReader(`{}`), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateHandler(t *testing.T) {
	svc := &stubAuth{}
	w := do(authRouter(svc), http.MethodPut, "/update", strings.NewReader(`{"name":"A2"}`), map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authtoken":"t3"}`, w.Body.String())
	assert.Equal(t, "65f0c0ffee0000000000abcd", svc.gotUpdateCaller)
	assert.Equal(t, "a@x.com", svc.gotUpdateEmail)
	assert.Equal(t, "A2", svc.gotUpdateName)

	w = do(authRouter(&stubAuth{updateErr: application.ErrForbidden}), http.MethodPut, "/update", strings.NewReader(`{"name":"A2"}`), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(authRouter(&stubAuth{updateErr: application.ErrUpdateFailed}), http.MethodPut, "/update", strings.NewReader(`{"name":"A2"}`), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, application.ErrUpdateFailed.Error(), decodeEnvelope(t, w).Message)

	w = do(authRouter(&stubAuth{updateErr: application.ErrUserNotFound}), http.MethodPut, "/update", strings.NewReader(`{"name":"A2"}`), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// memUsers is an in-memory user store for driving the real AuthService.
type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return repository.ErrDuplicate
	}
	u.ID = bson.NewObjectID()
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id bson.ObjectID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) UpdateFirstName(_ context.Context, email, firstName string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.FirstName = firstName
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func TestUpdateHandler_OnlyOwnAccount(t *testing.T) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewAuthService(users, jwt, nil, bcrypt.MinCost)
	ctx := context.Background()

	alice, err := svc.Register(ctx, application.RegisterInput{Email: "alice@x.com", Password: "secret1", FirstName: "Alice", LastName: "A"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, application.RegisterInput{Email: "bob@x.com", Password: "secret1", FirstName: "Bob", LastName: "B"})
	require.NoError(t, err)

	h := NewAuthHandler(svc, quietLogger())
	r := gin.New()
	r.PUT("/update", middleware.Auth(jwt), h.Update)
	bearer := "Bearer " + alice.Token

	w := do(r, http.MethodPut, "/update", strings.NewReader(`{"name":"Mallory"}`),
		map[string]string{"Authorization": bearer, "email": "bob@x.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Bob", users.byEmail["bob@x.com"].FirstName)

	w = do(r, http.MethodPut, "/update", strings.NewReader(`{"name":"Alicia"}`),
		map[string]string{"Authorization": bearer, "email": "alice@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alicia", users.byEmail["alice@x.com"].FirstName)

	w = do(r, http.MethodPut, "/update", strings.NewReader(`{"name":"Alicia"}`),
		map[string]string{"Authorization": bearer})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileHandler(t *testing.T) {
	svc := &stubAuth{}
	w := do(authRouter(svc), http.MethodGet, "/profile", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "65f0c0ffee0000000000abcd", svc.gotProfileID)
	assert.JSONEq(t, `{"id":"65f0c0ffee0000000000abcd","email":"a@x.com","firstName":"A2","lastName":"B","createdAt":"1970-01-01T00:00:00Z"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
}

// ---- gifts ----

type stubGifts struct {
	gifts   []entity.Gift
	err     error
	added   *application.GiftInput
	upload  string
	uploadT string
}

func (s *stubGifts) List(context.Context) ([]entity.Gift, error) { return s.gifts, s.err }

func (s *stubGifts) Get(_ context.Context, id string) (*entity.Gift, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Gift{Name: "Lamp"}, nil
}

func (s *stubGifts) Add(_ context.Context, in application.GiftInput) (*entity.Gift, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = &in
	return &entity.Gift{Name: in.Name, Category: in.Category, Condition: in.Condition, DateAdded: 1}, nil
}

func (s *stubGifts) UploadImage(_ context.Context, _, filename, contentType string, r io.Reader) (*entity.Gift, error) {
	if s.err != nil {
		return nil, s.err
	}
	b, _ := io.ReadAll(r)
	s.upload, s.uploadT = string(b), contentType
	return &entity.Gift{Image: "https://img.test/" + filename}, nil
}

func giftRouter(svc GiftService) *gin.Engine {
	h := NewGiftHandler(svc, quietLogger())
	r := gin.New()
	r.GET("/gifts", h.List)
	r.GET("/gifts/:id", h.Get)
	r.POST("/gifts", h.Add)
	r.POST("/gifts/:id/image", h.UploadImage)
	return r
}

func TestGiftHandlers_List(t *testing.T) {
	w := do(giftRouter(&stubGifts{gifts: []entity.Gift{{Name: "Lamp"}}}), http.MethodGet, "/gifts", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []entity.Gift
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Lamp", got[0].Name)

	w = do(giftRouter(&stubGifts{err: application.ErrNoGifts}), http.MethodGet, "/gifts", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no gifts found", decodeEnvelope(t, w).Message)
}

func TestGiftHandlers_Get(t *testing.T) {
	w := do(giftRouter(&stubGifts{}), http.MethodGet, "/gifts/65f0c0ffee0000000000abcd", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	bad := &application.ValidationError{Violations: []validation.FieldViolation{{Field: "id"}}}
	w = do(giftRouter(&stubGifts{err: bad}), http.MethodGet, "/gifts/nope", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(giftRouter(&stubGifts{err: application.ErrGiftNotFound}), http.MethodGet, "/gifts/65f0c0ffee0000000000abcd", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGiftHandlers_Add(t *testing.T) {
	svc := &stubGifts{}
	w := do(giftRouter(svc), http.MethodPost, "/gifts", strings.NewReader(`{"name":"Desk","category":"Office","condition":"New","age_years":2}`), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.added)
	assert.InDelta(t, 2.0, svc.added.AgeYears, 1e-9)

	var body struct {
		Message string      `json:"message"`
		Gift    entity.Gift `json:"gift"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Gift added successfully", body.Message)
	assert.Equal(t, "Desk", body.Gift.Name)

	svc = &stubGifts{}
	w = do(giftRouter(svc), http.MethodPost, "/gifts", strings.NewReader(`{"name":"Desk","owner":"me"}`), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.added)
	assert.Equal(t, "owner", decodeEnvelope(t, w).Error[0].Field)

	svc = &stubGifts{}
	w = do(giftRouter(svc), http.MethodPost, "/gifts", strings.NewReader(`{"name":"Desk"}{"owner":"me"}`), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.added)
	assert.Equal(t, "payload", decodeEnvelope(t, w).Error[0].Field)

	w = do(giftRouter(&stubGifts{}), http.MethodPost, "/gifts", strings.NewReader("{\"name\":\"Desk\"}\n"), nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(giftRouter(&stubGifts{err: errors.New("boom")}), http.MethodPost, "/gifts", strings.NewReader(`{"name":"Desk"}`), nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func multipartImage(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestGiftHandlers_UploadImage(t *testing.T) {
	svc := &stubGifts{}
	body, ct := multipartImage(t, "lamp.png", "image/png", "PNGDATA")
	w := do(giftRouter(svc), http.MethodPost, "/gifts/65f0c0ffee0000000000abcd/image", body, map[string]string{"Content-Type": ct})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"image":"https://img.test/lamp.png"}`, w.Body.String())
	assert.Equal(t, "PNGDATA", svc.upload)
	assert.Equal(t, "image/png", svc.uploadT)

	w = do(giftRouter(&stubGifts{}), http.MethodPost, "/gifts/65f0c0ffee0000000000abcd/image", strings.NewReader(`{}`), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, ct = multipartImage(t, "lamp.png", "image/png", "PNGDATA")
	w = do(giftRouter(&stubGifts{err: application.ErrStorageUnavailable}), http.MethodPost, "/gifts/65f0c0ffee0000000000abcd/image", body, map[string]string{"Content-Type": ct})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ---- search ----

type stubSearch struct {
	got     application.SearchParams
	gotQ    string
	gotSize int
	err     error
}

func (s *stubSearch) Search(_ context.Context, p application.SearchParams) ([]entity.Gift, error) {
	s.got = p
	if s.err != nil {
		return nil, s.err
	}
	return []entity.Gift{}, nil
}

func (s *stubSearch) TextSearch(_ context.Context, q string, size int) ([]entity.Gift, error) {
	s.gotQ, s.gotSize = q, size
	if s.err != nil {
		return nil, s.err
	}
	return []entity.Gift{{Name: "Desk Lamp"}}, nil
}

func searchRouter(svc SearchService) *gin.Engine {
	h := NewSearchHandler(svc, quietLogger())
	r := gin.New()
	r.GET("/search", h.Search)
	r.GET("/search/text", h.Text)
	return r
}

func TestSearchHandler(t *testing.T) {
	svc := &stubSearch{}
	w := do(searchRouter(svc), http.MethodGet, "/search?name=bike&category=Sports&condition=New&age_years=3", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.Equal(t, application.SearchParams{Name: "bike", Category: "Sports", Condition: "New", AgeYears: "3"}, svc.got)

	w = do(searchRouter(&stubSearch{err: errors.New("boom")}), http.MethodGet, "/search", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSearchHandler_Text(t *testing.T) {
	svc := &stubSearch{}
	w := do(searchRouter(svc), http.MethodGet, "/search/text?q=lamp&size=abc", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lamp", svc.gotQ)
	assert.Zero(t, svc.gotSize)

	w = do(searchRouter(&stubSearch{err: application.ErrSearchUnavailable}), http.MethodGet, "/search/text?q=lamp", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// ---- sentiment ----

func TestSentimentHandler(t *testing.T) {
	a, err := sentiment.NewAnalyzer()
	require.NoError(t, err)
	h := NewSentimentHandler(a, quietLogger())
	r := gin.New()
	r.POST("/sentiment", h.Analyze)

	w := do(r, http.MethodPost, "/sentiment?sentence=this+is+bad", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sentimentScore":-1,"sentiment":"negative"}`, w.Body.String())

	w = do(r, http.MethodPost, "/sentiment?sentence=+++", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid sentence provided", decodeEnvelope(t, w).Message)
}

package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"user-account/internal/data/entity"
	"user-account/internal/data/repository"
	"user-account/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memRepo keeps users in a slice; enough to drive the router end to end.
type memRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *memRepo) EnsureSchema(context.Context) error { return nil }

func (r *memRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) List(_ context.Context, _ entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for i, u := range r.users {
		if i >= offset && len(out) < limit && !u.IsAdmin {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRepo) Count(_ context.Context, _ entity.UserFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memRepo) UpdateByID(_ context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			if update.Name != nil {
				u.Name = *update.Name
			}
			cp := *u
			cp.Image = nil
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *memRepo) DeleteByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type outbox struct {
	mu     sync.Mutex
	bodies map[string]string
	err    error
}

func (o *outbox) Send(_ context.Context, to, _, body string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.bodies[to] = body
	return nil
}

func (o *outbox) body(to string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.bodies[to]
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

var activationLinkRe = regexp.MustCompile(`/user/activate/([^"]+)"`)

func testConfig(t *testing.T) *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Name: "user-account"},
		Activation: utils.ActivationConfig{
			Secret:    "test-secret",
			ClientURL: "http://localhost:3000",
			TTL:       utils.ActivationTTL,
		},
		Upload: utils.UploadConfig{MaxFileSize: 1024, Dir: t.TempDir()},
	}
}

func newTestApp(t *testing.T, db Pinger) (*App, *outbox) {
	mail := &outbox{bodies: map[string]string{}}
	repo := &repository.Repository{User: &memRepo{}}
	app := Wiring(repo, db, testConfig(t), zap.NewNop(), Options{Mailer: mail})
	return app, mail
}

func do(t *testing.T, app *App, method, target string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	var env map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerForm(t *testing.T, email string) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"name":     "John Doe",
		"email":    email,
		"password": "secret123",
		"phone":    "0123456789",
		"address":  "Main street 1",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestRouter_RegistrationLifecycle(t *testing.T) {
	app, mail := newTestApp(t, pinger{})

	// submit
	body, ct := registerForm(t, "john@example.com")
	w, env := do(t, app, http.MethodPost, "/api/users/process-register", body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Please go to your john@example.com to complete the registration process", env["message"])

	// nothing stored yet
	w, env = do(t, app, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env["payload"].(map[string]any)["data"])

	// verify with the emailed token
	match := activationLinkRe.FindStringSubmatch(mail.body("john@example.com"))
	require.Len(t, match, 2)
	verify, _ := json.Marshal(map[string]string{"token": match[1]})
	w, env = do(t, app, http.MethodPost, "/api/users/verify", bytes.NewBuffer(verify), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := env["payload"].(map[string]any)
	id := user["id"].(string)
	assert.Equal(t, "john@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// same token again
	w, _ = do(t, app, http.MethodPost, "/api/users/verify", bytes.NewBuffer(verify), "application/json")
	assert.Equal(t, http.StatusConflict, w.Code)

	// read, update, delete
	w, _ = do(t, app, http.MethodGet, "/api/users/"+id, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, app, http.MethodPut, "/api/users/"+id, bytes.NewBufferString("name=Johnny"), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Johnny", env["payload"].(map[string]any)["name"])

	w, _ = do(t, app, http.MethodDelete, "/api/users/"+id, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, app, http.MethodGet, "/api/users/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RegisterDispatchFailure(t *testing.T) {
	app, mail := newTestApp(t, pinger{})
	mail.err = errors.New("smtp down")

	body, ct := registerForm(t, "john@example.com")
	w, env := do(t, app, http.MethodPost, "/api/users/process-register", body, ct)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 500, env["statusCode"])
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApp(t, pinger{})
	w, _ := do(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	app, _ = newTestApp(t, pinger{err: errors.New("down")})
	w, _ = do(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_MetricsAndUnknownRoutes(t *testing.T) {
	app, _ := newTestApp(t, pinger{})

	w, env := do(t, app, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", env["message"])

	w, _ = do(t, app, http.MethodPatch, "/api/users/verify", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w, _ = do(t, app, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

package usecase_test

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"user-account/internal/data/entity"
	"user-account/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UserRepoMock) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *UserRepoMock) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) UpdateByID(ctx context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepoMock) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type ImageStoreMock struct {
	mock.Mock
}

func (m *ImageStoreMock) Validate(file *multipart.FileHeader) error {
	return m.Called(file).Error(0)
}

func (m *ImageStoreMock) Encode(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *ImageStoreMock) Delete(stored string) {
	m.Called(stored)
}

type CodecMock struct {
	mock.Mock
}

func (m *CodecMock) Issue(claims map[string]any, secret string, ttl time.Duration) (string, error) {
	args := m.Called(claims, secret, ttl)
	return args.String(0), args.Error(1)
}

func (m *CodecMock) Verify(token, secret string) (map[string]any, error) {
	args := m.Called(token, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

type DispatcherMock struct {
	mock.Mock
}

func (m *DispatcherMock) Send(ctx context.Context, to, subject, bodyHTML string) error {
	return m.Called(ctx, to, subject, bodyHTML).Error(0)
}

// memUserRepo is an in-memory UserRepository with the same unique-email
// and admin-filter rules as the postgres one.
type memUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

func (r *memUserRepo) EnsureSchema(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, repository.ErrEmailExists)
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().Add(time.Duration(len(r.users)) * time.Millisecond)
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
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

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) matching(filter entity.UserFilter) []*entity.User {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	var out []*entity.User
	for _, u := range r.users {
		if u.IsAdmin {
			continue
		}
		if term == "" ||
			strings.Contains(strings.ToLower(u.Name), term) ||
			strings.Contains(strings.ToLower(u.Email), term) ||
			strings.Contains(strings.ToLower(u.Phone), term) {
			cp := *u
			cp.Password = ""
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memUserRepo) List(_ context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.matching(filter)
	if offset >= len(all) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memUserRepo) Count(_ context.Context, filter entity.UserFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.matching(filter))), nil
}

func (r *memUserRepo) UpdateByID(_ context.Context, id uuid.UUID, update entity.UserUpdate) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Password != nil {
			u.Password = *update.Password
		}
		if update.Phone != nil {
			u.Phone = *update.Phone
		}
		if update.Address != nil {
			u.Address = *update.Address
		}
		if update.Image != nil {
			u.Image = update.Image
		}
		cp := *u
		cp.Password = ""
		cp.Image = nil
		return &cp, nil
	}
	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) DeleteByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
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

func (r *memUserRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

package usecase

import (
	"context"
	"errors"
	"mime/multipart"

	"user-account/internal/data/entity"
	"user-account/internal/data/repository"
	"user-account/internal/dto/request"
	"user-account/internal/dto/response"
	"user-account/pkg/imagestore"
	"user-account/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest, image *multipart.FileHeader) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	images   ImageStore
	hashing  bool
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, images ImageStore, hashing bool, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		images:   images,
		hashing:  hashing,
		log:      log,
	}
}

func (us *userService) ListUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	req.Normalize()
	filter := entity.UserFilter{Search: req.Search}

	users, err := us.userRepo.List(ctx, filter, req.Limit, req.Offset())
	if err != nil {
		return nil, utils.NewInternal("failed to get users", err)
	}

	total, err := us.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, utils.NewInternal("failed to count users", err)
	}

	us.log.Debug("Users retrieved",
		zap.String("search", req.Search),
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("limit", req.Limit),
	)

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit, total), nil
}

func (us *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser removes the account and then, best effort, its image.
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return utils.NewNotFound("user not found")
	}

	user, err := us.userRepo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return utils.NewNotFound("user not found")
	}
	if err != nil {
		return utils.NewInternal("failed to delete user", err)
	}

	if user.Image != nil {
		us.images.Delete(*user.Image)
	}

	us.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("email", user.Email))
	return nil
}

// UpdateUser applies the whitelisted fields and an optional new image. The
// returned user has neither password nor image.
func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest, image *multipart.FileHeader) (*response.UserResponse, error) {
	// 1. Must exist
	current, err := us.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, utils.NewValidation(errs)
	}

	update := entity.UserUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if req.Password != nil {
		password := *req.Password
		if us.hashing {
			if password, err = utils.HashPassword(password); err != nil {
				return nil, utils.NewInternal("failed to process password", err)
			}
		}
		update.Password = &password
	}

	// 3. Optional image
	if image != nil {
		if err := us.images.Validate(image); err != nil {
			return nil, utils.NewBadRequest("file too large", err)
		}
		encoded, err := us.images.Encode(image)
		if errors.Is(err, imagestore.ErrFileTooLarge) {
			return nil, utils.NewBadRequest("file too large", err)
		}
		if err != nil {
			return nil, utils.NewInternal("failed to process image", err)
		}
		update.Image = &encoded
	}

	if update.IsEmpty() {
		resp := response.UserToResponse(current)
		resp.Image = nil
		return &resp, nil
	}

	// 4. Persist
	updated, err := us.userRepo.UpdateByID(ctx, current.ID, update)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, utils.NewNotFound("user not found")
	}
	if err != nil {
		return nil, utils.NewInternal("failed to update user", err)
	}

	us.log.Info("User updated", zap.String("user_id", updated.ID.String()))

	resp := response.UserToResponse(updated)
	resp.Image = nil
	return &resp, nil
}

func (us *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID))
		return nil, utils.NewNotFound("user not found")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, utils.NewNotFound("user not found")
	}
	if err != nil {
		return nil, utils.NewInternal("failed to get user", err)
	}

	return user, nil
}

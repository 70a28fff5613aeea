package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"strings"

	"user-account/internal/data/entity"
	"user-account/internal/data/repository"
	"user-account/internal/dto/request"
	"user-account/internal/dto/response"
	"user-account/pkg/imagestore"
	"user-account/pkg/mailer"
	"user-account/pkg/token"
	"user-account/pkg/utils"

	"go.uber.org/zap"
)

const activationSubject = "Account activation email"

// RegisterService runs the email-verified registration: nothing is stored
// until the token sent by email comes back through Verify.
type RegisterService interface {
	Register(ctx context.Context, req *request.RegisterRequest, image *multipart.FileHeader) (*response.RegisterResponse, error)
	Verify(ctx context.Context, tokenStr string) (*response.UserResponse, error)
}

type registerService struct {
	userRepo repository.UserRepository
	images   ImageStore
	tokens   token.Codec
	mailer   mailer.Dispatcher
	config   utils.ActivationConfig
	hashing  bool
	log      *zap.Logger
}

func NewRegisterService(
	userRepo repository.UserRepository,
	images ImageStore,
	tokens token.Codec,
	dispatcher mailer.Dispatcher,
	config *utils.Config,
	log *zap.Logger,
) RegisterService {
	return &registerService{
		userRepo: userRepo,
		images:   images,
		tokens:   tokens,
		mailer:   dispatcher,
		config:   config.Activation,
		hashing:  config.App.PasswordHashing,
		log:      log,
	}
}

func (s *registerService) Register(ctx context.Context, req *request.RegisterRequest, image *multipart.FileHeader) (*response.RegisterResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, utils.NewValidation(errs)
	}

	// 2. Email must be free
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewInternal("failed to check email", err)
	}
	if exists {
		return nil, utils.NewConflict("user with this email already exists, please sign in")
	}

	// 3. Image is mandatory and bounded
	if image == nil {
		return nil, utils.NewConflict("image is required")
	}
	if err := s.images.Validate(image); err != nil {
		return nil, utils.NewBadRequest("file too large", err)
	}

	encoded, err := s.images.Encode(image)
	if errors.Is(err, imagestore.ErrFileTooLarge) {
		return nil, utils.NewBadRequest("file too large", err)
	}
	if err != nil {
		return nil, utils.NewInternal("failed to process image", err)
	}

	// 4. The token is the pending registration
	pending := PendingRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
		Image:    encoded,
	}

	tokenStr, err := s.tokens.Issue(pending.Claims(), s.config.Secret, s.config.TTL)
	if err != nil {
		return nil, utils.NewInternal("failed to create activation token", err)
	}

	// 5. Send activation email; on failure the token is simply never used
	body, err := mailer.ActivationEmail(req.Name, s.activationLink(tokenStr), s.config.TTL.String())
	if err != nil {
		return nil, utils.NewInternal("failed to prepare verification email", err)
	}
	if err := s.mailer.Send(ctx, req.Email, activationSubject, body); err != nil {
		return nil, utils.NewDispatchError(err)
	}

	s.log.Info("Activation email sent",
		zap.String("email", req.Email),
		zap.Duration("ttl", s.config.TTL),
	)

	return &response.RegisterResponse{
		Message: fmt.Sprintf("Please go to your %s to complete the registration process", req.Email),
		Name:    req.Name,
	}, nil
}

func (s *registerService) Verify(ctx context.Context, tokenStr string) (*response.UserResponse, error) {
	// 1. Token present
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, utils.NewNotFound("token not found")
	}

	// 2. Decode and check signature/expiry
	claims, err := s.tokens.Verify(tokenStr, s.config.Secret)
	if err != nil {
		return nil, utils.NewUnauthorized("invalid or expired token", err)
	}

	pending, err := PendingRegistrationFromClaims(claims)
	if err != nil {
		return nil, utils.NewUnauthorized("invalid or expired token", err)
	}

	// 3. Someone may have finished first
	exists, err := s.userRepo.ExistsByEmail(ctx, pending.Email)
	if err != nil {
		return nil, utils.NewInternal("failed to check email", err)
	}
	if exists {
		return nil, utils.NewConflict("user with this email already exists, please sign in")
	}

	// 4. Create the user exactly as submitted
	password := pending.Password
	if s.hashing {
		if password, err = utils.HashPassword(password); err != nil {
			return nil, utils.NewInternal("failed to process password", err)
		}
	}

	user := &entity.User{
		Name:     pending.Name,
		Email:    pending.Email,
		Phone:    pending.Phone,
		Password: password,
		Address:  pending.Address,
	}
	if pending.Image != "" {
		user.Image = &pending.Image
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, utils.NewConflict("user with this email already exists, please sign in")
		}
		return nil, utils.NewInternal("failed to create account", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *registerService) activationLink(tokenStr string) string {
	return strings.TrimRight(s.config.ClientURL, "/") + "/user/activate/" + url.PathEscape(tokenStr)
}

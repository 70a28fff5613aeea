package usecase

import (
	"mime/multipart"

	"user-account/internal/data/repository"
	"user-account/pkg/mailer"
	"user-account/pkg/token"
	"user-account/pkg/utils"

	"go.uber.org/zap"
)

// ImageStore is what the services need from pkg/imagestore.
type ImageStore interface {
	Validate(file *multipart.FileHeader) error
	Encode(file *multipart.FileHeader) (string, error)
	Delete(stored string)
}

// Deps groups the collaborators shared by the services.
type Deps struct {
	Repo   *repository.Repository
	Images ImageStore
	Tokens token.Codec
	Mailer mailer.Dispatcher
}

type Service struct {
	Register RegisterService
	User     UserService
}

func NewService(deps Deps, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Register: NewRegisterService(deps.Repo.User, deps.Images, deps.Tokens, deps.Mailer, config, log),
		User:     NewUserService(deps.Repo.User, deps.Images, config.App.PasswordHashing, log),
	}
}

package adaptor

import (
	"user-account/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Register *RegisterHandler
	User     *UserHandler
}

func NewHandler(service *usecase.Service, maxUploadSize int64, log *zap.Logger) *Handler {
	return &Handler{
		Register: NewRegisterHandler(service.Register, maxUploadSize, log),
		User:     NewUserHandler(service.User, maxUploadSize, log),
	}
}

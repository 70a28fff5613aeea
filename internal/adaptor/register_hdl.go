package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"user-account/internal/dto/request"
	"user-account/internal/usecase"
	"user-account/pkg/utils"

	"go.uber.org/zap"
)

type RegisterHandler struct {
	service     usecase.RegisterService
	uploadLimit int64
	log         *zap.Logger
}

func NewRegisterHandler(service usecase.RegisterService, maxFileSize int64, log *zap.Logger) *RegisterHandler {
	return &RegisterHandler{
		service:     service,
		uploadLimit: uploadLimit(maxFileSize),
		log:         log,
	}
}

// ProcessRegister handles POST /api/users/process-register
func (h *RegisterHandler) ProcessRegister(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.uploadLimit); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	defer cleanupForm(r)

	req := request.RegisterRequest{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Phone:    r.PostFormValue("phone"),
		Address:  r.PostFormValue("address"),
	}

	resp, err := h.service.Register(r.Context(), &req, formFile(r, "image"))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, resp.Message, resp)
}

// Verify handles POST /api/users/verify
func (h *RegisterHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest

	// a token carries the whole pending registration, image included
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadLimit)

	// an empty body is a missing token, answered by the service
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseError(w, h.log, utils.NewBadRequest("request body too large", err))
			return
		}
		utils.ResponseError(w, h.log, utils.NewBadRequest("Invalid request body", err))
		return
	}

	user, err := h.service.Verify(r.Context(), req.Token)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "User was registered successfully", user)
}

package adaptor

import (
	"net/http"

	"user-account/internal/dto/request"
	"user-account/internal/usecase"
	"user-account/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service     usecase.UserService
	uploadLimit int64
	log         *zap.Logger
}

func NewUserHandler(service usecase.UserService, maxFileSize int64, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:     service,
		uploadLimit: uploadLimit(maxFileSize),
		log:         log,
	}
}

// GetUsers handles GET /api/users?search=&page=&limit=
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.UserListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:  utils.ParseInt(query.Get("page"), request.DefaultPage),
			Limit: utils.ParseInt(query.Get("limit"), request.DefaultLimit),
		},
		Search: query.Get("search"),
	}

	users, err := h.service.ListUsers(r.Context(), req)
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Users were returned successfully", users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "User was returned successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "User was deleted successfully", nil)
}

// UpdateUser handles PUT /api/users/{id}. Only name, password, phone,
// address and image are read from the form.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, h.uploadLimit); err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}
	defer cleanupForm(r)

	req := &request.UpdateUserRequest{
		Name:     optionalValue(r, "name"),
		Password: optionalValue(r, "password"),
		Phone:    optionalValue(r, "phone"),
		Address:  optionalValue(r, "address"),
	}

	user, err := h.service.UpdateUser(r.Context(), chi.URLParam(r, "id"), req, formFile(r, "image"))
	if err != nil {
		utils.ResponseError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "User was updated successfully", user)
}

package wire

import (
	"user-account/internal/adaptor"
	"user-account/pkg/middleware"
	"user-account/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireRegister mounts the two-step registration routes. Submissions are
// rate limited since each one sends an email.
func wireRegister(
	r chi.Router,
	registerHandler *adaptor.RegisterHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.RateLimit(config.RateLimit, log)).Post("/process-register", registerHandler.ProcessRegister)
	r.Post("/verify", registerHandler.Verify)
}

package wire

import (
	"user-account/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Get("/", userHandler.GetUsers)          // GET /api/users?search=&page=1&limit=5
	r.Get("/{id}", userHandler.GetUser)       // GET /api/users/{id}
	r.Put("/{id}", userHandler.UpdateUser)    // PUT /api/users/{id}
	r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/users/{id}
}

package request

// UserListRequest is the query of GET /api/users.
type UserListRequest struct {
	PaginatedRequest
	Search string `json:"search"`
}

// UpdateUserRequest holds the fields a profile update may change. Fields
// left nil are not touched; email and admin flag cannot be set here.
type UpdateUserRequest struct {
	Name     *string `form:"name" validate:"omitempty,min=3,max=31"`
	Password *string `form:"password" validate:"omitempty,min=6"`
	Phone    *string `form:"phone" validate:"omitempty,min=3,max=20"`
	Address  *string `form:"address" validate:"omitempty,min=3"`
}

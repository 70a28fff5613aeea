package entity

// User is a finalized account. Password is stored as it reaches the
// repository; hashing, when enabled, happens before that.
type User struct {
	Base
	Name     string  `db:"name"`
	Email    string  `db:"email"`
	Phone    string  `db:"phone"`
	Password string  `db:"password"`
	Address  string  `db:"address"`
	Image    *string `db:"image"`
	IsAdmin  bool    `db:"is_admin"`
}

// UserUpdate lists the only fields an update may touch. Nil means unchanged.
type UserUpdate struct {
	Name     *string
	Password *string
	Phone    *string
	Address  *string
	Image    *string
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Password == nil && u.Phone == nil &&
		u.Address == nil && u.Image == nil
}

// UserFilter narrows a user listing. Admin accounts are always excluded.
type UserFilter struct {
	Search string
}

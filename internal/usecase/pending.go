package usecase

import "fmt"

// PendingRegistration is a submitted but unverified account. It only ever
// exists inside a signed activation token.
type PendingRegistration struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Address  string
	Image    string
}

func (p PendingRegistration) Claims() map[string]any {
	return map[string]any{
		"name":     p.Name,
		"email":    p.Email,
		"phone":    p.Phone,
		"password": p.Password,
		"address":  p.Address,
		"image":    p.Image,
	}
}

// PendingRegistrationFromClaims rebuilds the registration from verified
// claims. Email is mandatory; every present field must be a string.
func PendingRegistrationFromClaims(claims map[string]any) (PendingRegistration, error) {
	var p PendingRegistration
	fields := []struct {
		key string
		dst *string
	}{
		{"name", &p.Name},
		{"email", &p.Email},
		{"phone", &p.Phone},
		{"password", &p.Password},
		{"address", &p.Address},
		{"image", &p.Image},
	}

	for _, f := range fields {
		raw, ok := claims[f.key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return PendingRegistration{}, fmt.Errorf("claim %q is %T, want string", f.key, raw)
		}
		*f.dst = s
	}

	if p.Email == "" {
		return PendingRegistration{}, fmt.Errorf("claim %q missing", "email")
	}
	return p, nil
}

package form

import (
	"net/url"
	"strings"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
)

// SignupForm registers a new account. Password2 is the confirmation of
// Password1.
type SignupForm struct {
	Email     string     `form:"email"     json:"email"     validate:"required,email,max=254"`
	Username  string     `form:"username"  json:"username"  validate:"required,min=3,max=32"`
	Password1 string     `form:"password1" json:"password1" validate:"required,min=8,max=72"`
	Password2 string     `form:"password2" json:"password2"`
	Role      model.Role `form:"role"      json:"role"      validate:"required"`
}

func (f *SignupForm) Bind(v url.Values) error {
	f.Email = v.Get("email")
	f.Username = v.Get("username")
	f.Password1 = v.Get("password1")
	f.Password2 = v.Get("password2")
	f.Role = model.Role(v.Get("role"))
	return nil
}

// Validate trims every field except the passwords, then checks the password
// confirmation before every other rule, so a mismatch is always reported as
// PasswordMismatch. JSON and form posts normalize the same way.
func (f *SignupForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
	f.Role = model.Role(strings.TrimSpace(string(f.Role)))

	if f.Password1 != f.Password2 {
		return apperror.PasswordMismatch()
	}
	if err := check(f); err != nil {
		return err
	}
	if _, err := model.ParseRole(string(f.Role)); err != nil {
		return apperror.ValidationFailed("role", "role must be Bookie or Punter")
	}
	return nil
}

type LoginForm struct {
	Email    string `form:"email"    json:"email"    validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,max=72"`
}

func (f *LoginForm) Bind(v url.Values) error {
	f.Email = v.Get("email")
	f.Password = v.Get("password")
	return nil
}

func (f *LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return check(f)
}

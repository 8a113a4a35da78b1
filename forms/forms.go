// Package forms validates user input before any network call, producing
// per-field messages the way the sign-in, sign-up and profile screens
// surface them.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"trimly/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the wire field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldErrors maps field names to user-facing validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// SignInInput is the sign-in form.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// ProfileInput is the profile-edit form. The three password fields form a
// group: filling in the current password makes the new password and its
// confirmation required, and the confirmation must match.
type ProfileInput struct {
	Name                 string `json:"name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	OldPassword          string `json:"old_password"`
	Password             string `json:"password" validate:"required_with=OldPassword"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required_with=OldPassword,eqfield=Password"`
}

// ToUpdate builds the PUT /profile payload, omitting the password block
// when the user left the current password empty.
func (in ProfileInput) ToUpdate() models.ProfileUpdate {
	upd := models.ProfileUpdate{
		Name:  in.Name,
		Email: in.Email,
	}
	if in.OldPassword != "" {
		upd.OldPassword = in.OldPassword
		upd.Password = in.Password
		upd.PasswordConfirmation = in.PasswordConfirmation
	}
	return upd
}

// ValidateSignIn checks the sign-in form; nil means valid.
func ValidateSignIn(in SignInInput) FieldErrors {
	return check(in)
}

// ValidateSignUp checks the registration form; nil means valid.
func ValidateSignUp(in SignUpInput) FieldErrors {
	return check(in)
}

// ValidateProfile checks the profile-edit form; nil means valid.
func ValidateProfile(in ProfileInput) FieldErrors {
	return check(in)
}

func check(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	out := FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// message translates a validation failure into the message shown next to
// the field.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with":
		return "This field is required"
	case "email":
		return "Enter a valid e-mail"
	case "min":
		return fmt.Sprintf("At least %s characters", fe.Param())
	case "eqfield":
		return "Confirmation does not match"
	default:
		return "Invalid value"
	}
}

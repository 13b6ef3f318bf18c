package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"shareit/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks a request rejected before reaching the services.
var ErrInvalid = errors.New("invalid request")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the validate tags of req.
func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "notblank":
		return fe.Field() + " must not be blank"
	case "email":
		return fe.Field() + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}

// Decode reads a JSON body into req and validates it.
func Decode(body io.Reader, req interface{}) error {
	if err := json.NewDecoder(body).Decode(req); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", ErrInvalid, err)
	}
	return Validate(req)
}

type UserCreate struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
}

func (r UserCreate) ToModel() *models.User {
	return &models.User{Name: r.Name, Email: r.Email}
}

type UserUpdate struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (r UserUpdate) ToPatch() models.UserPatch {
	return models.UserPatch{Name: r.Name, Email: r.Email}
}

type ItemCreate struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

func (r ItemCreate) ToModel() *models.Item {
	item := &models.Item{Name: r.Name, Description: r.Description, Available: *r.Available}
	if r.RequestID != nil {
		item.RequestID = *r.RequestID
	}
	return item
}

type ItemUpdate struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Description *string `json:"description" validate:"omitempty,notblank"`
	Available   *bool   `json:"available"`
}

func (r ItemUpdate) ToPatch() models.ItemPatch {
	return models.ItemPatch{Name: r.Name, Description: r.Description, Available: r.Available}
}

type BookingCreate struct {
	ItemID int64 `json:"itemId" validate:"required,gt=0"`
	Start  *Time `json:"start" validate:"required"`
	End    *Time `json:"end" validate:"required"`
}

// CheckFuture reports an error unless both ends of the booking lie after now.
func (r BookingCreate) CheckFuture(now time.Time) error {
	if !r.Start.After(now) {
		return fmt.Errorf("%w: start must be in the future", ErrInvalid)
	}
	if !r.End.After(now) {
		return fmt.Errorf("%w: end must be in the future", ErrInvalid)
	}
	return nil
}

type CommentCreate struct {
	Text string `json:"text" validate:"required,notblank"`
}

type RequestCreate struct {
	Description string `json:"description" validate:"required,notblank"`
}

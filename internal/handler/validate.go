package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

// Validator adapts go-playground/validator to echo.  It knows the
// "seattype" tag, which accepts any name seatmap.ParseSeatType accepts.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the custom tags registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("seattype", func(fl validator.FieldLevel) bool {
		_, err := seatmap.ParseSeatType(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describeFieldError(fe))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "seattype":
		names := make([]string, 0, 3)
		for _, t := range seatmap.SeatTypes() {
			names = append(names, string(t))
		}
		return fmt.Sprintf("%s: unknown seat type %q, want one of [%s]", fe.Field(), fe.Value(), strings.Join(names, " "))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s must be %s %s", fe.Field(), map[string]string{"min": "at least", "max": "at most"}[fe.Tag()], fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// bindValid binds the request into req and validates it.  The returned
// error is suitable for a 400 response.
func bindValid(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.New("invalid body")
	}
	return c.Validate(req)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

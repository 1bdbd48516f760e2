// Package validators holds the request-binding helpers shared by the per-area validator packages.
package validators

import (
	"fmt"
	"reflect"
	"strings"

	"eduplatform/middleware"
	"eduplatform/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const validatedKey = "validatedRequest"

// Normalizer is implemented by requests that trim or default fields before validation.
type Normalizer interface {
	Normalize()
}

// Checker is implemented by requests with rules that span several fields.
type Checker interface {
	Check() map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates v and returns field → message, or nil when v is valid.
func Struct(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return "must be a valid URL"
	case "nefield":
		return fmt.Sprintf("must differ from %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func check(c *fiber.Ctx, req interface{}) error {
	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}
	if fields := Struct(req); fields != nil {
		return middleware.ValidationFields(fields)
	}
	if ch, ok := req.(Checker); ok {
		if fields := ch.Check(); len(fields) > 0 {
			return middleware.ValidationFields(fields)
		}
	}
	c.Locals(validatedKey, req)
	return c.Next()
}

// Body parses the JSON body into T, validates it and stores it for Validated.
func Body[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return middleware.ValidationError("Invalid request body")
		}
		return check(c, req)
	}
}

// Query parses the query string into T, validates it and stores it for Validated.
func Query[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.QueryParser(req); err != nil {
			return middleware.ValidationError("Invalid query parameters")
		}
		return check(c, req)
	}
}

// Validated returns the request stored by Body or Query.
func Validated[T any](c *fiber.Ctx) *T {
	if req, ok := c.Locals(validatedKey).(*T); ok {
		return req
	}
	return new(T)
}

// ParamID reads a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, ok := utils.ParseID(c.Params(name))
	if !ok {
		return 0, middleware.ValidationError(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// Pagination is embedded by list queries.
type Pagination struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1"`
}

// MaxPageSize caps every list endpoint.
const MaxPageSize = 100

// Defaults fills page 1 and the given limit when absent.
func (p *Pagination) Defaults(limit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = limit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
}

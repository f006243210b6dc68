package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"github.com/octobees/ragnarok-registration/internal/dto"
	"github.com/octobees/ragnarok-registration/internal/entity"
	"github.com/octobees/ragnarok-registration/internal/repository"
)

// ValidationError describes the first rule a registration request broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredOrder is the order in which missing fields are reported.
var requiredOrder = map[string]int{
	"username": 0,
	"password": 1,
	"email":    2,
	"sex":      3,
}

// RegistrationService validates registration requests and forwards them to
// the register_user procedure.
type RegistrationService struct {
	registrations repository.RegistrationRepository
	validate      *validator.Validate
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(registrations repository.RegistrationRepository) *RegistrationService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registered on a fresh validator, so this cannot fail.
	_ = validate.RegisterValidation("utf16max", utf16Max)
	return &RegistrationService{registrations: registrations, validate: validate}
}

// Register validates req and, if it passes, attempts to create the account.
// Validation failures are returned as *ValidationError and never reach the
// database. Any other error is an infrastructure failure.
func (s *RegistrationService) Register(ctx context.Context, req dto.RegisterUserRequest) (entity.RegistrationOutcome, error) {
	reg, err := s.Validate(req)
	if err != nil {
		return entity.RegistrationOutcome{}, err
	}

	outcome, err := s.registrations.Register(ctx, reg)
	if err != nil {
		return entity.RegistrationOutcome{}, fmt.Errorf("register %q: %w", reg.Username, err)
	}
	return outcome, nil
}

// Validate normalizes req and checks it, reporting only the first violation.
func (s *RegistrationService) Validate(req dto.RegisterUserRequest) (entity.Registration, error) {
	req.Sex = strings.ToUpper(req.Sex)

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return entity.Registration{}, fmt.Errorf("validate registration: %w", err)
		}
		return entity.Registration{}, firstViolation(fieldErrs)
	}

	return entity.Registration{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Sex:      req.Sex,
	}, nil
}

// utf16Max bounds a string by its UTF-16 code unit count, so characters
// outside the Basic Multilingual Plane count twice.
func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) <= limit
}

func firstViolation(fieldErrs validator.ValidationErrors) *ValidationError {
	sorted := make([]validator.FieldError, len(fieldErrs))
	copy(sorted, fieldErrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return violationRank(sorted[i]) < violationRank(sorted[j])
	})

	fe := sorted[0]
	return &ValidationError{Field: fe.Field(), Message: violationMessage(fe)}
}

// violationRank orders violations: missing fields first (in field order),
// then the sex code, then the username length.
func violationRank(fe validator.FieldError) int {
	switch fe.Tag() {
	case "required":
		if rank, ok := requiredOrder[fe.Field()]; ok {
			return rank
		}
		return len(requiredOrder)
	case "oneof":
		return len(requiredOrder) + 1
	case "utf16max", "max":
		return len(requiredOrder) + 2
	default:
		return len(requiredOrder) + 3
	}
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing required field: " + fe.Field()
	case "oneof":
		return fmt.Sprintf("Invalid %s value. Must be %s", fe.Field(), joinChoices(strings.Fields(fe.Param())))
	case "utf16max", "max":
		return fmt.Sprintf("%s must be %s characters or less", capitalize(fe.Field()), fe.Param())
	default:
		return "Invalid value for field: " + fe.Field()
	}
}

// joinChoices renders ["M","F","S"] as "M, F, or S".
func joinChoices(choices []string) string {
	switch len(choices) {
	case 0:
		return ""
	case 1:
		return choices[0]
	case 2:
		return choices[0] + " or " + choices[1]
	}
	return strings.Join(choices[:len(choices)-1], ", ") + ", or " + choices[len(choices)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

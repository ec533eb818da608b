package service

//go:generate mockgen -destination=../../mocks/mock_user_creator.go -package=mocks github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service UserCreator

import (
	"context"
	"strings"
	"time"

	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
)

// UserCreator creates a user together with its role profile row.
type UserCreator interface {
	CreateUser(ctx context.Context, input authdto.RegisterInput, role authdomain.Role) (*authdomain.User, error)
}

func validateFullName(name *string) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return autherror.Validation("full_name cannot be empty")
	}
	return nil
}

func validateGender(gender *string) error {
	if gender == nil {
		return nil
	}
	switch *gender {
	case "male", "female", "other":
		return nil
	default:
		return autherror.InvalidFormat("gender must be one of male, female, other")
	}
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(authdto.DateLayout, *value)
	if err != nil {
		return nil, autherror.InvalidFormat("dob must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

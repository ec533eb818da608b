// Package seed bootstraps accounts that cannot be created through the API:
// the admin user, plus doctors with their weekly availability.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authdomain "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/domain"
	authdto "github.com/AnthoniusHendriyanto/clinic-service/internal/auth/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/dto"
	"github.com/AnthoniusHendriyanto/clinic-service/internal/clinic/service"
	autherror "github.com/AnthoniusHendriyanto/clinic-service/internal/errors"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

type Account struct {
	FullName    string  `yaml:"full_name"`
	Email       string  `yaml:"email"`
	Password    string  `yaml:"password"`
	PhoneNumber *string `yaml:"phone_number"`
}

type Slot struct {
	Day   string `yaml:"day"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

type Doctor struct {
	Account         `yaml:",inline"`
	Specialization  string `yaml:"specialization"`
	LicenseNumber   string `yaml:"license_number"`
	ExperienceYears int    `yaml:"experience_years"`
	Availability    []Slot `yaml:"availability"`
}

type File struct {
	Admin   *Account `yaml:"admin"`
	Doctors []Doctor `yaml:"doctors"`
}

// Parse decodes a seed document and rejects entries without an email.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	if f.Admin != nil && f.Admin.Email == "" {
		return nil, errors.New("admin.email is required")
	}
	for i, d := range f.Doctors {
		if d.Email == "" {
			return nil, fmt.Errorf("doctors[%d].email is required", i)
		}
	}
	return &f, nil
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*authdomain.User, error)
}

type Summary struct {
	Created  int
	Existing int
	Slots    int
}

func (s *Summary) count(created bool) {
	if created {
		s.Created++
	} else {
		s.Existing++
	}
}

type Seeder struct {
	users        service.UserCreator
	finder       UserFinder
	availability *service.AvailabilityService
	log          *zap.Logger
}

func NewSeeder(users service.UserCreator, finder UserFinder, availability *service.AvailabilityService, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{users: users, finder: finder, availability: availability, log: log}
}

// Run creates missing accounts. Existing accounts are left untouched, but a
// doctor's availability is always replaced with the seeded set.
func (s *Seeder) Run(ctx context.Context, f *File) (Summary, error) {
	var sum Summary

	if f.Admin != nil {
		_, created, err := s.ensure(ctx, registration(*f.Admin), authdomain.RoleAdmin)
		if err != nil {
			return sum, fmt.Errorf("admin %s: %w", f.Admin.Email, err)
		}
		sum.count(created)
	}

	for _, d := range f.Doctors {
		input := registration(d.Account)
		input.Specialization = d.Specialization
		input.LicenseNumber = d.LicenseNumber
		input.ExperienceYears = d.ExperienceYears

		id, created, err := s.ensure(ctx, input, authdomain.RoleDoctor)
		if err != nil {
			return sum, fmt.Errorf("doctor %s: %w", d.Email, err)
		}
		sum.count(created)

		if d.Availability == nil {
			continue
		}
		slots := make([]dto.SlotInput, 0, len(d.Availability))
		for _, slot := range d.Availability {
			slots = append(slots, dto.SlotInput{AvailableDay: slot.Day, StartTime: slot.Start, EndTime: slot.End})
		}
		stored, err := s.availability.Replace(ctx, id, dto.AvailabilityInput{Slots: slots})
		if err != nil {
			return sum, fmt.Errorf("doctor %s availability: %w", d.Email, err)
		}
		sum.Slots += len(stored)
	}

	return sum, nil
}

func (s *Seeder) ensure(ctx context.Context, input authdto.RegisterInput, role authdomain.Role) (string, bool, error) {
	user, err := s.users.CreateUser(ctx, input, role)
	if err == nil {
		s.log.Info("seeded user", zap.String("email", user.Email), zap.String("role", role.String()))
		return user.ID, true, nil
	}
	if !errors.Is(err, autherror.ErrEmailAlreadyInUse) {
		return "", false, err
	}

	existing, err := s.finder.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", false, err
	}
	if existing == nil {
		return "", false, autherror.ErrUserNotFound
	}
	if existing.Role != role {
		return "", false, fmt.Errorf("%s already exists with role %s", input.Email, existing.Role)
	}
	return existing.ID, false, nil
}

func registration(a Account) authdto.RegisterInput {
	return authdto.RegisterInput{
		FullName:    a.FullName,
		Email:       strings.ToLower(strings.TrimSpace(a.Email)),
		Password:    a.Password,
		PhoneNumber: a.PhoneNumber,
	}
}

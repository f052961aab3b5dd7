package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wizhill05/car-rental/pkg/db"
	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/Wizhill05/car-rental/pkg/mailer"
	"gorm.io/gorm"
)

const welcomeSubject = "Welcome to Car Rental Service"

// RegisterParams carries the fields needed to register a renter.
type RegisterParams struct {
	Name      string
	Phone     string
	LicenseNo string
	Email     string
}

// Service exposes renter operations.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
}

type service struct {
	repo   Repository
	emails mailer.Sender
	logg   *logger.Logger
}

// NewService wires the user service.
func NewService(repo Repository, emails mailer.Sender, logg *logger.Logger) Service {
	return &service{repo: repo, emails: emails, logg: logg}
}

// Register stores a new renter and sends a welcome email. Delivery failures
// are logged but never fail the registration; the unique indexes on phone,
// license number and email are the source of truth for duplicates.
func (s *service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if params.Name == "" || params.Phone == "" || params.LicenseNo == "" || params.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}

	user := &models.User{
		Name:      params.Name,
		Phone:     params.Phone,
		LicenseNo: params.LicenseNo,
		Email:     params.Email,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Phone, license number, or email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	if s.emails != nil {
		body := fmt.Sprintf(
			"Dear %s,\n\nThank you for registering with our car rental service. You can now browse and book cars.\n\nHappy driving!",
			user.Name,
		)
		if err := s.emails.Send(ctx, user.Email, welcomeSubject, body); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "user_id", user.ID.String()), "sending welcome email", err)
		}
	}
	return user, nil
}

func (s *service) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	return user, nil
}

package users

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Wizhill05/car-rental/pkg/db/models"
	pkgerrors "github.com/Wizhill05/car-rental/pkg/errors"
	"github.com/Wizhill05/car-rental/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byPhone   map[string]*models.User
	createErr error
	created   []*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byPhone: make(map[string]*models.User)}
}

func (f *fakeRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.created = append(f.created, user)
	f.byPhone[user.Phone] = user
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, user := range f.byPhone {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if user, ok := f.byPhone[phone]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, to, subject, body string) error {
	f.sent = append(f.sent, to)
	return f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func validParams() RegisterParams {
	return RegisterParams{
		Name:      "Dana",
		Phone:     "555-0100",
		LicenseNo: "DL-9001",
		Email:     "dana@example.com",
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeSender{}, testLogger())

	params := validParams()
	params.Email = ""
	_, err := svc.Register(context.Background(), params)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{}
	svc := NewService(repo, sender, testLogger())

	user, err := svc.Register(context.Background(), validParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if len(sender.sent) != 1 || sender.sent[0] != "dana@example.com" {
		t.Fatalf("expected welcome email to dana@example.com, got %v", sender.sent)
	}
}

func TestRegisterSurvivesEmailFailure(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := NewService(repo, sender, testLogger())

	if _, err := svc.Register(context.Background(), validParams()); err != nil {
		t.Fatalf("email failure must not fail registration: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected user to be stored, got %d", len(repo.created))
	}
}

func TestRegisterMapsDuplicateToConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New(`duplicate key value violates unique constraint "idx_users_phone"`)
	svc := NewService(repo, &fakeSender{}, testLogger())

	_, err := svc.Register(context.Background(), validParams())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(typed.Message(), "already exists") {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestGetByPhone(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeSender{}, testLogger())

	if _, err := svc.Register(context.Background(), validParams()); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.GetByPhone(context.Background(), "555-0100")
	if err != nil {
		t.Fatalf("get by phone: %v", err)
	}
	if user.Name != "Dana" {
		t.Fatalf("unexpected user %+v", user)
	}

	_, err = svc.GetByPhone(context.Background(), "555-0199")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

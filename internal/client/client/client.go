package client

import (
	"context"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
	Register(ctx context.Context, reg models.Registration) (*models.RegistrationResult, error)
	Logout(ctx context.Context, token string) error

	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.Profile, error)
	UpdatePassword(ctx context.Context, token string, change models.PasswordChange) error
	VerifyEmail(ctx context.Context, token, code string) (bool, error)
	ResendVerification(ctx context.Context, token, email, language string) (string, error)

	ListEvents(ctx context.Context, token string) ([]models.EventGroup, error)
	GetEvent(ctx context.Context, token string, id models.EventID) (*models.Event, error)
	CreateEvent(ctx context.Context, token string, ev models.NewEvent) error
	DeleteEvent(ctx context.Context, token string, id models.EventID) error

	SearchAddress(ctx context.Context, token, query string) ([]models.AddressOption, error)
}

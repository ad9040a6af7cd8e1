package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

// fakeClient implements client.Client with canned results and records the
// arguments it was called with.
type fakeClient struct {
	mu sync.Mutex

	LoginToken string
	LoginErr   error

	RegisterRet *models.RegistrationResult
	RegisterErr error

	LogoutErr error

	ProfileRet *models.Profile
	ProfileErr error

	UpdateProfileRet *models.Profile
	UpdateProfileErr error

	UpdatePasswordErr error

	VerifyRet bool
	VerifyErr error

	ResendRet string
	ResendErr error

	Groups     []models.EventGroup
	ListErr    error
	ListHook   func()
	EventRet   *models.Event
	EventErr   error
	CreateErr  error
	CreateHook func()
	DeleteErr  error

	AddressRet []models.AddressOption
	AddressErr error

	LastCreds        models.Credentials
	LastRegistration models.Registration
	LastToken        string
	LastPatch        models.ProfilePatch
	LastPassword     models.PasswordChange
	LastCode         string
	LastResendEmail  string
	LastResendLang   string
	LastNewEvent     models.NewEvent
	LastDeleted      models.EventID
	LastQuery        string

	LogoutCalls int
	ListCalls   int
	CreateCalls int
	DeleteCalls int
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreds = creds
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, reg models.Registration) (*models.RegistrationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegistration = reg
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	f.LastToken = token
	return f.LogoutErr
}

func (f *fakeClient) GetProfile(_ context.Context, token string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, token string, patch models.ProfilePatch) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastPatch = patch
	return f.UpdateProfileRet, f.UpdateProfileErr
}

func (f *fakeClient) UpdatePassword(_ context.Context, token string, change models.PasswordChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastPassword = change
	return f.UpdatePasswordErr
}

func (f *fakeClient) VerifyEmail(_ context.Context, token, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastCode = code
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) ResendVerification(_ context.Context, token, email, language string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastResendEmail = email
	f.LastResendLang = language
	return f.ResendRet, f.ResendErr
}

func (f *fakeClient) ListEvents(_ context.Context, token string) ([]models.EventGroup, error) {
	f.mu.Lock()
	f.ListCalls++
	f.LastToken = token
	hook := f.ListHook
	groups, err := f.Groups, f.ListErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return groups, err
}

func (f *fakeClient) GetEvent(_ context.Context, token string, _ models.EventID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	return f.EventRet, f.EventErr
}

func (f *fakeClient) CreateEvent(_ context.Context, token string, ev models.NewEvent) error {
	f.mu.Lock()
	f.CreateCalls++
	f.LastToken = token
	f.LastNewEvent = ev
	hook, err := f.CreateHook, f.CreateErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return err
}

func (f *fakeClient) DeleteEvent(_ context.Context, token string, id models.EventID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.LastToken = token
	f.LastDeleted = id
	return f.DeleteErr
}

func (f *fakeClient) SearchAddress(_ context.Context, token, query string) ([]models.AddressOption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastToken = token
	f.LastQuery = query
	return f.AddressRet, f.AddressErr
}

// memTokens is an in-memory tokenstore.Store.
type memTokens struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memTokens) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *memTokens) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memTokens) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
)

type fakeClient struct {
	mu sync.Mutex

	profile    *models.Profile
	profileErr error
	groups     []models.EventGroup
	eventsErr  error

	ProfileCalls int
	EventsCalls  int
	LastToken    string
}

var _ client.Client = (*fakeClient)(nil)

var errNotImplemented = errors.New("not implemented")

func (f *fakeClient) GetProfile(_ context.Context, token string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ProfileCalls++
	f.LastToken = token
	return f.profile, f.profileErr
}

func (f *fakeClient) ListEvents(_ context.Context, token string) ([]models.EventGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EventsCalls++
	f.LastToken = token
	return f.groups, f.eventsErr
}

func (f *fakeClient) Login(context.Context, models.Credentials) (string, error) {
	return "", errNotImplemented
}

func (f *fakeClient) Register(context.Context, models.Registration) (*models.RegistrationResult, error) {
	return nil, errNotImplemented
}

func (f *fakeClient) Logout(context.Context, string) error { return errNotImplemented }

func (f *fakeClient) UpdateProfile(context.Context, string, models.ProfilePatch) (*models.Profile, error) {
	return nil, errNotImplemented
}

func (f *fakeClient) UpdatePassword(context.Context, string, models.PasswordChange) error {
	return errNotImplemented
}

func (f *fakeClient) VerifyEmail(context.Context, string, string) (bool, error) {
	return false, errNotImplemented
}

func (f *fakeClient) ResendVerification(context.Context, string, string, string) (string, error) {
	return "", errNotImplemented
}

func (f *fakeClient) GetEvent(context.Context, string, models.EventID) (*models.Event, error) {
	return nil, errNotImplemented
}

func (f *fakeClient) CreateEvent(context.Context, string, models.NewEvent) error {
	return errNotImplemented
}

func (f *fakeClient) DeleteEvent(context.Context, string, models.EventID) error {
	return errNotImplemented
}

func (f *fakeClient) SearchAddress(context.Context, string, string) ([]models.AddressOption, error) {
	return nil, errNotImplemented
}

// memTokens is an in-memory tokenstore.Store.
type memTokens struct {
	mu      sync.Mutex
	values  map[string]string
	loadErr error
}

func newMemTokens(kv ...string) *memTokens {
	m := &memTokens{values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		m.values[kv[i]] = kv[i+1]
	}
	return m
}

func (m *memTokens) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memTokens) Load(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.values[key], nil
}

func (m *memTokens) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// memMeta is an in-memory metadata.Repository.
type memMeta struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemMeta() *memMeta { return &memMeta{values: map[string][]byte{}} }

func (m *memMeta) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memMeta) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memMeta) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memMeta) List(_ context.Context, _ string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *memMeta) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string][]byte{}
	return nil
}

package testutils

import (
	"context"
	"sync"

	"github.com/nfrund/fieldnotes/internal/domain"
)

// FakeProfiles is an in-memory domain.ProfileRepository.
type FakeProfiles struct {
	mu        sync.Mutex
	Profiles  []domain.Profile
	Err       error
	ListCalls int
}

func (f *FakeProfiles) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]domain.Profile{}, f.Profiles...), nil
}

func (f *FakeProfiles) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	created := *p
	if created.ID == nil {
		created.ID = NewTestRecordID(domain.ProfilesTable)
	}
	f.Profiles = append(f.Profiles, created)
	return &created, nil
}

// FakeSpecies is an in-memory domain.SpeciesRepository keyed by record key.
type FakeSpecies struct {
	mu          sync.Mutex
	Records     []domain.Species
	Err         error
	UpdateCalls int
}

func (f *FakeSpecies) ListSpecies(ctx context.Context) ([]domain.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]domain.Species{}, f.Records...), nil
}

func (f *FakeSpecies) GetSpecies(ctx context.Context, key string) (*domain.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range f.Records {
		if f.Records[i].Key() == key {
			s := f.Records[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *FakeSpecies) CreateSpecies(ctx context.Context, s *domain.Species) (*domain.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	created := *s
	if created.ID == nil {
		created.ID = NewTestRecordID(domain.SpeciesTable)
	}
	f.Records = append(f.Records, created)
	return &created, nil
}

func (f *FakeSpecies) UpdateSpecies(ctx context.Context, key string, upd domain.SpeciesUpdate) (*domain.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range f.Records {
		if f.Records[i].Key() != key {
			continue
		}
		s := &f.Records[i]
		s.ScientificName = upd.ScientificName
		s.CommonName = optional(upd.CommonName)
		s.Image = optional(upd.Image)
		s.Description = optional(upd.Description)
		s.TotalPopulation = upd.TotalPopulation
		s.Kingdom = upd.Kingdom
		out := *s
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

// FakeSessions is an in-memory domain.SessionRepository. Tokens maps a
// cookie value to the session it resolves to.
type FakeSessions struct {
	mu        sync.Mutex
	Tokens    map[string]*domain.Session
	Users     map[string]string // email -> password
	Err       error
	LookupErr error
}

// NewFakeSessions returns a FakeSessions with empty maps.
func NewFakeSessions() *FakeSessions {
	return &FakeSessions{Tokens: map[string]*domain.Session{}, Users: map[string]string{}}
}

// Add registers a token for the given user and returns the session.
func (f *FakeSessions) Add(token, userID, email string) *domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := &domain.Session{Token: token, UserID: userID, Email: email}
	f.Tokens[token] = s
	return s
}

func (f *FakeSessions) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" {
		return nil, nil
	}
	if f.LookupErr != nil {
		return nil, f.LookupErr
	}
	s, ok := f.Tokens[token]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return s, nil
}

func (f *FakeSessions) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	if pw, ok := f.Users[creds.Email]; !ok || pw != creds.Password {
		return "", domain.ErrInvalidCredentials
	}
	token := "token-" + creds.Email
	f.Tokens[token] = &domain.Session{Token: token, UserID: "user:" + creds.Email, Email: creds.Email}
	return token, nil
}

func (f *FakeSessions) SignUp(ctx context.Context, creds domain.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	if _, ok := f.Users[creds.Email]; ok {
		return "", domain.ErrUserAlreadyExists
	}
	f.Users[creds.Email] = creds.Password
	token := "token-" + creds.Email
	f.Tokens[token] = &domain.Session{Token: token, UserID: "user:" + creds.Email, Email: creds.Email}
	return token, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

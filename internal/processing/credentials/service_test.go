package credentials

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AndrewN04/url-shortner/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	byHash  map[string]*Credential
	findErr error
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byHash: make(map[string]*Credential)}
}

func (m *memoryRepo) Create(_ context.Context, keyHash, note string, at time.Time) (*Credential, error) {
	m.nextID++
	c := &Credential{
		ID:        "00000000-0000-0000-0000-00000000000" + string(rune('0'+m.nextID)),
		KeyHash:   keyHash,
		CreatedAt: at,
		Note:      note,
	}
	m.byHash[keyHash] = c
	return c, nil
}

func (m *memoryRepo) FindByHash(_ context.Context, keyHash string) (*Credential, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	c, ok := m.byHash[keyHash]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memoryRepo) ListActive(context.Context) ([]Credential, error) {
	var out []Credential
	for _, c := range m.byHash {
		if !c.Revoked() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryRepo) Revoke(_ context.Context, id string, at time.Time) (*Credential, error) {
	for _, c := range m.byHash {
		if c.ID != id {
			continue
		}
		if c.Revoked() {
			return nil, ErrAlreadyRevoked
		}
		c.RevokedAt = &at
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

type recordingPublisher struct {
	envelopes []events.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, ev events.Envelope) error {
	p.envelopes = append(p.envelopes, ev)
	return nil
}

func newTestService(t *testing.T, repo CredentialRepository, pub events.Publisher) *Service {
	t.Helper()
	h, err := NewHasher("test-pepper")
	require.NoError(t, err)
	svc := NewService(repo, h, pub)
	svc.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestAuthenticate(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo, nil)
	ctx := context.Background()

	issued, err := svc.Create(ctx, "ci key")
	require.NoError(t, err)

	revoked, err := svc.Create(ctx, "old key")
	require.NoError(t, err)
	_, err = svc.Revoke(ctx, revoked.Credential.ID)
	require.NoError(t, err)

	unknown := "sk_" + strings.Repeat("ab", 32)

	tests := []struct {
		name   string
		header string
		want   Status
		wantID string
	}{
		{"valid", "Bearer " + issued.Secret, StatusOK, issued.Credential.ID},
		{"lowercase scheme", "bearer " + issued.Secret, StatusOK, issued.Credential.ID},
		{"missing", "", StatusMissing, ""},
		{"blank", "   ", StatusMissing, ""},
		{"wrong scheme", "Basic " + issued.Secret, StatusMalformed, ""},
		{"bad format", "Bearer sk_short", StatusMalformed, ""},
		{"extra part", "Bearer " + issued.Secret + " x", StatusMalformed, ""},
		{"unknown", "Bearer " + unknown, StatusUnknown, ""},
		{"revoked", "Bearer " + revoked.Secret, StatusRevoked, revoked.Credential.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Authenticate(ctx, tt.header)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, tt.wantID, res.CredentialID)
		})
	}
}

func TestAuthenticate_StorageFault(t *testing.T) {
	repo := newMemoryRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestService(t, repo, nil)

	token := "sk_" + strings.Repeat("cd", 32)
	_, err := svc.Authenticate(context.Background(), "Bearer "+token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCreate_StoresOnlyDigest(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo, nil)

	issued, err := svc.Create(context.Background(), "  note  ")
	require.NoError(t, err)

	assert.True(t, ValidFormat(issued.Secret))
	assert.Equal(t, "note", issued.Credential.Note)
	assert.NotEqual(t, issued.Secret, issued.Credential.KeyHash)
	assert.Equal(t, svc.hasher.Hash(issued.Secret), issued.Credential.KeyHash)
	for hash := range repo.byHash {
		assert.NotContains(t, hash, issued.Secret)
	}
}

func TestRevoke(t *testing.T) {
	repo := newMemoryRepo()
	pub := &recordingPublisher{}
	svc := newTestService(t, repo, pub)
	ctx := context.Background()

	issued, err := svc.Create(ctx, "")
	require.NoError(t, err)

	cred, err := svc.Revoke(ctx, issued.Credential.ID)
	require.NoError(t, err)
	require.NotNil(t, cred.RevokedAt)
	first := *cred.RevokedAt

	require.Len(t, pub.envelopes, 1)
	assert.Equal(t, events.TypeAPIKeyRevoked, pub.envelopes[0].Type)

	_, err = svc.Revoke(ctx, issued.Credential.ID)
	assert.ErrorIs(t, err, ErrAlreadyRevoked)
	assert.Len(t, pub.envelopes, 1)

	stored, err := repo.FindByHash(ctx, issued.Credential.KeyHash)
	require.NoError(t, err)
	assert.Equal(t, first, *stored.RevokedAt)

	_, err = svc.Revoke(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Revoke(ctx, " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListActive(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(t, repo, nil)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "a")
	_, _ = svc.Create(ctx, "b")
	_, err := svc.Revoke(ctx, a.Credential.ID)
	require.NoError(t, err)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].Note)
}

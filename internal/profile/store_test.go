package profile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/domain"
)

// fakeSync is a scriptable domain.SyncClient for store tests.
type fakeSync struct {
	fetchProfile domain.Profile
	fetchErr     error
}

func (f *fakeSync) Fetch(_ domain.Context) (domain.Profile, error) {
	return f.fetchProfile, f.fetchErr
}

func (f *fakeSync) Update(_ domain.Context, _ domain.UpdateRequest) (domain.Profile, error) {
	return domain.Profile{}, errors.New("not scripted")
}

func (f *fakeSync) DownloadResume(_ domain.Context, _ domain.ResumeRef) ([]byte, string, error) {
	return nil, "", errors.New("not scripted")
}

func TestStoreLoad_Success(t *testing.T) {
	fs := &fakeSync{fetchProfile: fullProfile()}
	st := NewStore(fs)

	var notified []domain.Profile
	st.Subscribe(func(p domain.Profile) { notified = append(notified, p) })

	require.NoError(t, st.Load(context.Background()))
	rec, ok := st.Current()
	assert.True(t, ok)
	assert.Equal(t, "Ada Lovelace", rec.FullName)
	require.Len(t, notified, 1)
	assert.Equal(t, "Ada Lovelace", notified[0].FullName)
}

func TestStoreLoad_NotFoundLeavesStoreEmpty(t *testing.T) {
	fs := &fakeSync{fetchErr: fmt.Errorf("op=sync.fetch: %w", domain.ErrNotFound)}
	st := NewStore(fs)

	err := st.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, ok := st.Current()
	assert.False(t, ok)
}

func TestStoreReplace_NotifiesListeners(t *testing.T) {
	st := NewStore(&fakeSync{})
	count := 0
	st.Subscribe(func(domain.Profile) { count++ })

	st.Replace(domain.Profile{FullName: "Ada"})
	st.Replace(domain.Profile{FullName: "Grace"})
	assert.Equal(t, 2, count)

	rec, ok := st.Current()
	assert.True(t, ok)
	assert.Equal(t, "Grace", rec.FullName)
}

func TestStoreSubscribe_ImmediateWhenLoaded(t *testing.T) {
	st := NewStore(&fakeSync{})
	st.Replace(fullProfile())

	var got domain.Profile
	st.Subscribe(func(p domain.Profile) { got = p })
	assert.Equal(t, "Ada Lovelace", got.FullName)
}

func TestStoreCurrent_ReturnsCopy(t *testing.T) {
	st := NewStore(&fakeSync{})
	st.Replace(fullProfile())

	rec, _ := st.Current()
	rec.Skills[0].Name = "Changed"
	rec.FullName = "Changed"

	again, _ := st.Current()
	assert.Equal(t, "Go", again.Skills[0].Name)
	assert.Equal(t, "Ada Lovelace", again.FullName)
}

func TestStoreCompleteness(t *testing.T) {
	st := NewStore(&fakeSync{})
	assert.Equal(t, 0, st.Completeness())
	st.Replace(fullProfile())
	assert.Equal(t, 100, st.Completeness())
}

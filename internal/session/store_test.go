package session

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/omsctl/internal/security"
)

const testPath = "/home/user/.omsctl/session.json"

func newTestFileStore(t *testing.T, opts ...FileOption) (*FileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewFileStore(testPath, append([]FileOption{WithFs(fs)}, opts...)...), fs
}

func TestStores_SaveLoadClear(t *testing.T) {
	fileStore, _ := newTestFileStore(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Load()
			require.NoError(t, err)
			assert.False(t, ok, "empty store should report no session")

			want := testSession()
			require.NoError(t, store.Save(want))

			got, ok, err := store.Load()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)

			require.NoError(t, store.Clear())
			_, ok, err = store.Load()
			require.NoError(t, err)
			assert.False(t, ok, "cleared store should report no session")

			// clearing twice is fine
			require.NoError(t, store.Clear())
		})
	}
}

func TestStores_RejectIncomplete(t *testing.T) {
	fileStore, fs := newTestFileStore(t)

	for name, store := range map[string]Store{"memory": NewMemoryStore(), "file": fileStore} {
		t.Run(name, func(t *testing.T) {
			s := testSession()
			s.RefreshToken = ""
			err := store.Save(s)
			assert.True(t, errors.Is(err, ErrIncomplete))
		})
	}

	exists, err := afero.Exists(fs, testPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileStore_Layout(t *testing.T) {
	store, fs := newTestFileStore(t)
	require.NoError(t, store.Save(testSession()))

	info, err := fs.Stat(testPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access_token"`)
	assert.Contains(t, string(data), `"refresh_token"`)
	assert.Contains(t, string(data), `"user"`)

	// no temp files are left behind
	entries, err := afero.ReadDir(fs, filepath.Dir(testPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_MissingFieldIsNoSession(t *testing.T) {
	tests := map[string]string{
		"no user":          `{"access_token":"a","refresh_token":"r"}`,
		"no access token":  `{"refresh_token":"r","user":{"id":1,"email":"a@b.c","role":"Sales Rep"}}`,
		"no refresh token": `{"access_token":"a","user":{"id":1,"email":"a@b.c","role":"Sales Rep"}}`,
		"empty document":   `{}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			store, fs := newTestFileStore(t)
			require.NoError(t, afero.WriteFile(fs, testPath, []byte(content), 0o600))

			_, ok, err := store.Load()
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	store, fs := newTestFileStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("{not json"), 0o600))

	_, ok, err := store.Load()
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestFileStore_Sealed(t *testing.T) {
	sealer, err := security.NewSealer("s3cret")
	require.NoError(t, err)

	store, fs := newTestFileStore(t, WithSealer(sealer))
	want := testSession()
	require.NoError(t, store.Save(want))

	raw, err := afero.ReadFile(fs, testPath)
	require.NoError(t, err)
	assert.True(t, security.IsSealed(raw))
	assert.NotContains(t, string(raw), want.AccessToken)

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	t.Run("without passphrase", func(t *testing.T) {
		plain := NewFileStore(testPath, WithFs(fs))
		_, ok, err := plain.Load()
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrCorrupt))
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		other, err := security.NewSealer("other")
		require.NoError(t, err)
		_, ok, err := NewFileStore(testPath, WithFs(fs), WithSealer(other)).Load()
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrCorrupt))
	})
}

func TestFileStore_ConcurrentSave(t *testing.T) {
	store, _ := newTestFileStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.Save(testSession()))
		}()
	}
	wg.Wait()

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSession(), got)
}

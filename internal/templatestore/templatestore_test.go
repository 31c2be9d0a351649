package templatestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expodocs/internal/domain"
	"expodocs/internal/port"
)

type fakeStorage struct {
	objects   map[string][]byte
	downloads int
}

func (f *fakeStorage) Upload(context.Context, port.UploadInput) (*port.UploadOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStorage) Download(_ context.Context, _, key string) ([]byte, error) {
	f.downloads++
	b, ok := f.objects[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (f *fakeStorage) Delete(context.Context, string, string) error { return nil }

func (f *fakeStorage) GetPresignedURL(context.Context, string, string, int64) (string, error) {
	return "", errors.New("not implemented")
}

func TestS3StoreCachesFetches(t *testing.T) {
	storage := &fakeStorage{objects: map[string][]byte{
		"templates/Annexure.docx": []byte("docx-bytes"),
	}}
	store := NewS3Store(storage, "expodocs-assets", "templates")

	for i := 0; i < 3; i++ {
		raw, err := store.Get(context.Background(), "Annexure.docx")
		require.NoError(t, err)
		assert.Equal(t, "docx-bytes", string(raw))
	}
	assert.Equal(t, 1, storage.downloads)
}

func TestS3StoreMissingTemplate(t *testing.T) {
	store := NewS3Store(&fakeStorage{objects: map[string][]byte{}}, "expodocs-assets", "templates")
	_, err := store.Get(context.Background(), "Missing.docx")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Annexure.docx"), []byte("local-bytes"), 0o644))
	store := NewDirStore(dir)

	raw, err := store.Get(context.Background(), "Annexure.docx")
	require.NoError(t, err)
	assert.Equal(t, "local-bytes", string(raw))

	_, err = store.Get(context.Background(), "Missing.docx")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

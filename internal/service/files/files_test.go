package files

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestDiskStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ref, err := s.Save(ctx, CategoryPhoto, "me.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Contains(t, ref, "photo_")
	assert.Contains(t, ref, "me.jpg")

	r, name, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, ref, name)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestDiskStoreRejectsOversize(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Save(context.Background(), CategoryPayment, "proof.png", make([]byte, MaxSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDiskStoreRejectsDisallowedType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, CategoryPhoto, "me.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	_, err = s.Save(ctx, CategoryEducation, "degree.png", []byte("x"))
	assert.ErrorIs(t, err, ErrTypeNotAllowed)

	// pdf is fine for the id category
	_, err = s.Save(ctx, CategoryNationalID, "id.pdf", []byte("x"))
	assert.NoError(t, err)
}

func TestDiskStoreSanitizesName(t *testing.T) {
	s := newTestStore(t)

	ref, err := s.Save(context.Background(), CategoryPayment, "../../etc/pass wd.png", []byte("x"))
	require.NoError(t, err)
	assert.NotContains(t, ref, "/")
	assert.NotContains(t, ref, " ")
}

func TestDiskStoreRefsAreUnique(t *testing.T) {
	s := newTestStore(t)
	ts := time.Unix(1700000000, 0)
	s.now = func() time.Time {
		ts = ts.Add(time.Millisecond)
		return ts
	}

	a, err := s.Save(context.Background(), CategoryPhoto, "x.png", []byte("1"))
	require.NoError(t, err)
	b, err := s.Save(context.Background(), CategoryPhoto, "x.png", []byte("2"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDiskStoreDeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ref, err := s.Save(ctx, CategoryPhoto, "x.png", []byte("1"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, ref))
	require.NoError(t, s.Delete(ctx, ref))

	_, _, err = s.Open(ctx, ref)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreOpenRejectsPathEscape(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.Open(context.Background(), "../secrets.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
}

func TestSaveImageToLocalBackend(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := New(NewLocal(dir, "/media/"), 0)
	store.now = fixedClock

	info, err := store.Save(context.Background(), "gallery", "photo.PNG", bytes.NewReader(pngBytes(t, 12, 7)), KindImage)
	require.NoError(t, err)

	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 7, info.Height)
	assert.Equal(t, "photo.PNG", info.OriginalName)
	assert.True(t, strings.HasPrefix(info.Key, "gallery/20240309-"), info.Key)
	assert.True(t, strings.HasSuffix(info.Key, ".png"), info.Key)
	assert.Equal(t, "/media/"+info.Key, info.URL)

	written, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(info.Key)))
	require.NoError(t, err)
	assert.Equal(t, info.Size, int64(len(written)))
}

func TestSaveDocument(t *testing.T) {
	t.Parallel()

	store := New(NewLocal(t.TempDir(), "/media"), 0)
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

	info, err := store.Save(context.Background(), "notices", `C:\docs\circular.pdf`, bytes.NewReader(pdf), KindDocument)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.Equal(t, "circular.pdf", info.OriginalName)
	assert.Zero(t, info.Width)
	assert.True(t, strings.HasSuffix(info.Key, ".pdf"))
}

func TestSaveRejectsInvalidUploads(t *testing.T) {
	t.Parallel()

	store := New(NewLocal(t.TempDir(), "/media"), 64)
	ctx := context.Background()

	_, err := store.Save(ctx, "news", "empty.png", bytes.NewReader(nil), KindImage)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = store.Save(ctx, "news", "notes.txt", strings.NewReader("plain text body"), KindImage)
	require.ErrorIs(t, err, ErrUnsupportedType)

	_, err = store.Save(ctx, "news", "big.txt", strings.NewReader(strings.Repeat("a", 65)), KindDocument)
	require.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSanitizeFolder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"gallery", "gallery"},
		{"/Projects/", "projects"},
		{"../../etc", "etc"},
		{"csr images", "csrimages"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeFolder(tt.input), tt.input)
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	return &s3.PutObjectOutput{}, f.err
}

func TestS3BackendWrite(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	backend := &S3Backend{client: fake, cfg: S3Config{Bucket: "media", Region: "ap-south-1"}}
	store := New(backend, 0)

	info, err := store.Save(context.Background(), "projects", "hero.png", bytes.NewReader(pngBytes(t, 3, 2)), KindImage)
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "media", *fake.input.Bucket)
	assert.Equal(t, info.Key, *fake.input.Key)
	assert.Equal(t, "image/png", *fake.input.ContentType)
	assert.Equal(t, types.ObjectCannedACLPublicRead, fake.input.ACL)
	assert.Equal(t, "https://media.s3.ap-south-1.amazonaws.com/"+info.Key, info.URL)
}

func TestS3BackendURL(t *testing.T) {
	t.Parallel()

	custom := &S3Backend{cfg: S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}}
	assert.Equal(t, "https://cdn.example.com/a/b.png", custom.URL("a/b.png"))

	pathStyle := &S3Backend{cfg: S3Config{Bucket: "b", Endpoint: "http://localhost:9000", PathStyle: true}}
	assert.Equal(t, "http://localhost:9000/b/a.png", pathStyle.URL("a.png"))

	virtual := &S3Backend{cfg: S3Config{Bucket: "b", Endpoint: "https://b.storage.example.com"}}
	assert.Equal(t, "https://b.storage.example.com/a.png", virtual.URL("a.png"))
}

func TestNewS3(t *testing.T) {
	t.Parallel()

	backend, err := NewS3(S3Config{Bucket: "media", AccessKey: "key", SecretKey: "secret", Endpoint: "http://localhost:9000/", PathStyle: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, backend.cfg.Region)
	assert.Equal(t, "http://localhost:9000", backend.cfg.Endpoint)

	_, err = NewS3(S3Config{})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

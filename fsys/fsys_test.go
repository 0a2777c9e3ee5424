package fsys

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lemmego/appkit/config"
)

func exerciseFS(t *testing.T, fs FS) {
	t.Helper()

	ok, err := fs.Exists("models/demo.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.Read("models/demo.json")
	assert.ErrorIs(t, err, ErrFileNotFound)

	require.NoError(t, fs.Write("models/demo.json", []byte(`{"clicks":1}`)))

	ok, err = fs.Exists("models/demo.json")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := ReadAll(fs, "models/demo.json")
	require.NoError(t, err)
	assert.Equal(t, `{"clicks":1}`, string(data))

	require.NoError(t, fs.Delete("models/demo.json"))
	ok, err = fs.Exists("models/demo.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStorage(t *testing.T) {
	exerciseFS(t, NewMemoryStorage())
}

func TestLocalStorage(t *testing.T) {
	exerciseFS(t, NewLocalStorage(t.TempDir()))
}

func TestLocalStorageAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(t.TempDir())
	abs := filepath.Join(dir, "abs.yaml")

	require.NoError(t, ls.Write(abs, []byte("clicks: 2\n")))

	data, err := ReadAll(NewLocalStorage(dir), "abs.yaml")
	require.NoError(t, err)
	assert.Equal(t, "clicks: 2\n", string(data))
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
}

func notFound() error {
	return awserr.New("NotFound", "not found", nil)
}

func (f *fakeS3) GetObject(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.StringValue(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(in *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.StringValue(in.Key)]; !ok {
		return nil, notFound()
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3Storage(t *testing.T) {
	exerciseFS(t, &S3Storage{BucketName: "models", S3Client: &fakeS3{objects: map[string][]byte{}}})
}

func TestS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage("", "us-east-1", "k", "s", "")
	assert.Error(t, err)
}

func TestDriverSelection(t *testing.T) {
	config.Set("storage.disk", "memory")
	fs, err := Driver("")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, fs)

	config.Set("storage.local.path", t.TempDir())
	fs, err = Driver("local")
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, fs)

	_, err = Driver("ftp")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "ftp"))

	assert.Panics(t, func() { MustDriver("ftp") })
}

func TestDisksCacheByName(t *testing.T) {
	d := NewDisks()

	first, err := d.Disk("memory")
	require.NoError(t, err)
	require.NoError(t, first.Write("a.json", []byte("{}")))

	second, err := d.Disk("memory")
	require.NoError(t, err)
	ok, err := second.Exists("a.json")
	require.NoError(t, err)
	assert.True(t, ok)

	d.Forget("memory")
	third, err := d.Disk("memory")
	require.NoError(t, err)
	ok, err = third.Exists("a.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = d.Disk("ftp")
	assert.Error(t, err)
}

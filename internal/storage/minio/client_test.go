package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI implements objectAPI without a network and records object names.
type fakeAPI struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr    error
	putObject string
	putData   []byte
	putType   string

	getRC  io.ReadCloser
	getErr error

	removeErr error
	statErr   error
}

func (f *fakeAPI) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}

func (f *fakeAPI) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}

func (f *fakeAPI) PutObject(_ context.Context, _ string, object string, r io.Reader, _ int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putObject = object
	f.putType = opts.ContentType
	f.putData, _ = io.ReadAll(r)
	return minioLib.UploadInfo{}, f.putErr
}

func (f *fakeAPI) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}

func (f *fakeAPI) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}

func (f *fakeAPI) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func TestNewClient_Bucket(t *testing.T) {
	ctx := context.Background()

	t.Run("existing bucket", func(t *testing.T) {
		api := &fakeAPI{bucketExists: true}
		c, err := newClient(ctx, api, "b", "")
		require.NoError(t, err)
		assert.Equal(t, "b", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates missing bucket", func(t *testing.T) {
		api := &fakeAPI{}
		_, err := newClient(ctx, api, "sessions", "")
		require.NoError(t, err)
		assert.Equal(t, "sessions", api.madeBucket)
	})

	t.Run("check error", func(t *testing.T) {
		c, err := newClient(ctx, &fakeAPI{bucketExistsErr: errors.New("boom")}, "b", "")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to ensure bucket exists")
	})

	t.Run("create error", func(t *testing.T) {
		c, err := newClient(ctx, &fakeAPI{makeBucketErr: errors.New("fail")}, "b", "")
		assert.Nil(t, c)
		assert.ErrorContains(t, err, "failed to ensure bucket exists")
	})
}

func TestClient_UploadUsesPrefix(t *testing.T) {
	api := &fakeAPI{}
	c := &Client{api: api, bucket: "b", prefix: "slots"}

	require.NoError(t, c.Upload(context.Background(), "jobboard.token", bytes.NewReader([]byte("tok"))))
	assert.Equal(t, "slots/jobboard.token", api.putObject)
	assert.Equal(t, []byte("tok"), api.putData)
	assert.Equal(t, "text/plain", api.putType)

	api.putErr = errors.New("put-fail")
	assert.ErrorContains(t, c.Upload(context.Background(), "k", bytes.NewReader(nil)), "failed to upload object")
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	c := &Client{api: &fakeAPI{getRC: io.NopCloser(bytes.NewReader([]byte("abc")))}, bucket: "b"}
	rc, err := c.Download(ctx, "k")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)

	c = &Client{api: &fakeAPI{getErr: errors.New("get-fail")}, bucket: "b"}
	rc, err = c.Download(ctx, "k")
	assert.Nil(t, rc)
	assert.ErrorContains(t, err, "failed to get object")
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, (&Client{api: &fakeAPI{}, bucket: "b"}).Delete(ctx, "k"))
	err := (&Client{api: &fakeAPI{removeErr: errors.New("remove-fail")}, bucket: "b"}).Delete(ctx, "k")
	assert.ErrorContains(t, err, "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found", statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "other error", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{api: &fakeAPI{statErr: tt.statErr}, bucket: "b"}
			ok, err := c.Exists(ctx, "k")
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to stat object")
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, ok)
		})
	}
}

package fsxs3

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3FileSystem(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	fs := NewS3FileSystem(client, "bucket", "/exports/")

	ok, err := fs.Exists(ctx, "chat.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.WriteFileStream(ctx, "chat.txt", bytes.NewBufferString("transcript")))
	assert.Contains(t, client.objects, "bucket/exports/chat.txt")

	ok, err = fs.Exists(ctx, "chat.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := fs.ReadFile(ctx, "chat.txt")
	require.NoError(t, err)
	assert.Equal(t, "transcript", string(data))

	_, err = fs.ReadFile(ctx, "missing.txt")
	require.Error(t, err)

	assert.Equal(t, "s3://bucket/exports/chat.txt", fs.Location("chat.txt"))
	assert.Equal(t, "exports/a/b.txt", fs.key("../a/./b.txt"))
}

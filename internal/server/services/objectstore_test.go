package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	sc "github.com/allbox-app/allbox/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func testS3Config() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestStorageKey_ScopedToDialog(t *testing.T) {
	k1 := StorageKey("d1")
	k2 := StorageKey("d1")

	assert.True(t, strings.HasPrefix(k1, "dialogs/d1/"))
	assert.NotEqual(t, k1, k2)
}

func TestPresignedPutURL(t *testing.T) {
	var gotBucket, gotKey string

	orig := presignPutObject
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://s3/put"}, nil
	}
	defer func() { presignPutObject = orig }()

	store := NewObjectStore(testS3Config())
	url, err := store.PresignedPutURL(context.Background(), "dialogs/d1/abc")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/put", url)
	assert.Equal(t, "dialog-files", gotBucket)
	assert.Equal(t, "dialogs/d1/abc", gotKey)
}

func TestPresignedGetURL(t *testing.T) {
	orig := presignGetObject
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://s3/get/" + *in.Key}, nil
	}
	defer func() { presignGetObject = orig }()

	store := NewObjectStore(testS3Config())
	url, err := store.PresignedGetURL(context.Background(), "k1")
	require.NoError(t, err)
	assert.Equal(t, "https://s3/get/k1", url)
}

func TestPresignedPutURL_ErrorPropagates(t *testing.T) {
	orig := presignPutObject
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}
	defer func() { presignPutObject = orig }()

	store := NewObjectStore(testS3Config())
	_, err := store.PresignedPutURL(context.Background(), "k1")
	require.ErrorContains(t, err, "presign failed")
}

func TestDeleteObject(t *testing.T) {
	var gotKey string

	orig := deleteObject
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		gotKey = *in.Key
		return &s3.DeleteObjectOutput{}, nil
	}
	defer func() { deleteObject = orig }()

	store := NewObjectStore(testS3Config())
	require.NoError(t, store.DeleteObject(context.Background(), "k1"))
	assert.Equal(t, "k1", gotKey)
}

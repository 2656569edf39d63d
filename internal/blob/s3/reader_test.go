package s3blob

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeAPI struct {
	objects map[string]string
	err     error
	gotKey  string
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotKey = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.gotKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeAPI) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestReaderGet(t *testing.T) {
	api := &fakeAPI{objects: map[string]string{"exports/transactions.csv": "Sold Date\n01/10/2024\n"}}
	r := NewReader(&Client{s3: api, bucket: "exports"})

	rc, err := r.Get(context.Background(), "exports/transactions.csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	b, _ := io.ReadAll(rc)
	if !strings.HasPrefix(string(b), "Sold Date") {
		t.Fatalf("unexpected body %q", b)
	}

	if _, err := r.Get(context.Background(), "missing.csv"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestReaderGet_UpstreamError(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewReader(&Client{s3: &fakeAPI{err: boom}, bucket: "exports"})
	_, err := r.Get(context.Background(), "transactions.csv")
	if !errors.Is(err, boom) || errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientHealth(t *testing.T) {
	if err := (&Client{s3: &fakeAPI{}, bucket: "b"}).Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if err := (&Client{s3: &fakeAPI{err: errors.New("denied")}, bucket: "b"}).Health(context.Background()); err == nil {
		t.Fatalf("expected health error")
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  ClientConfig
	}{
		{"no bucket", ClientConfig{Region: "us-east-1"}},
		{"no region", ClientConfig{Bucket: "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(context.Background(), tc.cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNormaliseEndpoint(t *testing.T) {
	cases := []struct {
		in     string
		useSSL bool
		want   string
	}{
		{"localhost:9000", false, "http://localhost:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
		{"http://minio:9000", true, "http://minio:9000"},
	}
	for _, tc := range cases {
		if got := normaliseEndpoint(tc.in, tc.useSSL); got != tc.want {
			t.Fatalf("normaliseEndpoint(%q,%v)=%q want %q", tc.in, tc.useSSL, got, tc.want)
		}
	}
}

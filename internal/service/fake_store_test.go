package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// fakeStore is an in-memory BlobStore keyed by "bucket/key".
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
	failDel bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, bucket, key string, body io.Reader, _ int64, _ string) error {
	if f.failPut {
		return errors.New("put failed")
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = b
	return nil
}

func (f *fakeStore) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("no such object")
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStore) Delete(_ context.Context, bucket, key string) error {
	if f.failDel {
		return errors.New("delete failed")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStore) object(bucket, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[bucket+"/"+key]
	return b, ok
}

func (f *fakeStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

package store

import (
	"context"
	"errors"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvBlobs keeps each blob in its own file under a base directory.
type DiskvBlobs struct {
	d *diskv.Diskv
}

func OpenDiskv(basePath string) (*DiskvBlobs, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &DiskvBlobs{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (b *DiskvBlobs) Read(_ context.Context, key string) ([]byte, error) {
	data, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *DiskvBlobs) Write(_ context.Context, key string, data []byte) error {
	return b.d.Write(key, data)
}

func (b *DiskvBlobs) Close() error {
	return nil
}

package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend driver.
type Options struct {
	Driver Driver
	Path   string // file driver
	S3     S3Config
}

// Open constructs the configured store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(opts.Path)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

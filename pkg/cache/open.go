package cache

import (
	"context"

	errs "github.com/matzehuels/algotrace/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Options select and configure a backend.
type Options struct {
	Backend  string // none, file or redis; empty means file
	Dir      string // file backend root
	RedisURL string // redis backend address
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if err := errs.ValidatePath(opts.Dir); err != nil {
			return nil, err
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open cache dir")
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, errs.New(errs.ErrCodeUnsupported, "unknown cache backend %q", opts.Backend)
}

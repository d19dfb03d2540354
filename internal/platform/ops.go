package platform

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/quill/pkg/adapters/bucket"
	"github.com/aretw0/quill/pkg/adapters/fs"
	"github.com/aretw0/quill/pkg/adapters/memory"
	"github.com/aretw0/quill/pkg/adapters/redis"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/persist"
)

// Init builds and initializes the storage backend selected by the options.
// The uri argument is adapter-specific (the data directory for "fs").
func Init(uri string, opts ...Option) (core.Storage, error) {
	o := buildOptions(opts)
	codec, err := persist.CodecByName(o.codec)
	if err != nil {
		return nil, err
	}
	return initStorage(context.Background(), uri, codec, o)
}

func initStorage(ctx context.Context, uri string, codec persist.Codec, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	ext := "." + codec.Name()
	readOnly := o.readOnly()

	var storage core.Storage
	switch o.adapter {
	case AdapterFS, "":
		storage = initFS(uri, ext, o)
	case AdapterMemory:
		quota, _ := o.config["quota"].(int)
		storage = memory.NewStore(memory.WithQuota(quota), memory.WithReadOnly(readOnly))
	case AdapterRedis:
		storage = redis.Dial(o.redisAddr, redis.WithReadOnly(readOnly), redis.WithLogger(o.logger))
	case AdapterBucket:
		if o.bucketURL == "" {
			return nil, fmt.Errorf("bucket adapter requires a bucket URL")
		}
		b, err := bucket.Open(ctx, o.bucketURL,
			bucket.WithExt(ext),
			bucket.WithReadOnly(readOnly),
			bucket.WithLogger(o.logger),
		)
		if err != nil {
			return nil, err
		}
		storage = b
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := storage.Initialize(ctx); err != nil {
		if c, ok := storage.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, err
	}
	return storage, nil
}

// initFS resolves the data directory, applying the dev sandbox, and builds
// the filesystem store.
func initFS(path, ext string, o *options) *fs.Store {
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	isReadOnly := o.readOnly()

	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only access cannot damage anything, so it skips the sandbox.
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDataPath(path, useTemp)

	if IsDevRun() {
		switch {
		case isReadOnly:
			o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
		case bypassSafety:
			o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
		default:
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}
	if useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	return fs.NewStore(fs.Config{
		Path:         resolvedPath,
		Ext:          ext,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}

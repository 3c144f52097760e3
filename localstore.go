package vpcflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements ObjectStore over the local filesystem. The
// bucket is ignored and keys are file paths. Opened files support
// io.ReaderAt, so columnar objects are read without buffering.
type LocalStore struct{}

// Get opens the file at key.
func (LocalStore) Get(_ context.Context, _ string, key string) (io.ReadCloser, int64, error) {
	var f, err = os.Open(key)
	if err != nil {
		return nil, 0, classifyFileError(key, err)
	}
	var info, serr = f.Stat()
	if serr != nil {
		_ = f.Close()
		return nil, 0, classifyFileError(key, serr)
	}
	return f, info.Size(), nil
}

// Head reports the size of the file at key.
func (LocalStore) Head(_ context.Context, _ string, key string) (int64, error) {
	var info, err = os.Stat(key)
	if err != nil {
		return 0, classifyFileError(key, err)
	}
	return info.Size(), nil
}

// List walks the directory part of prefix and yields regular files
// whose path starts with prefix, in lexical order.
func (LocalStore) List(_ context.Context, bucket string, prefix string) BucketIterator {
	var root = prefix
	if info, err := os.Stat(prefix); err != nil || !info.IsDir() {
		root = filepath.Dir(prefix)
	}
	var files []LogFile
	var err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasPrefix(path, filepath.Clean(prefix)) {
			return nil
		}
		var info, ierr = d.Info()
		if ierr != nil {
			return ierr
		}
		var lf = ParseLogFileName(path)
		lf.Bucket = bucket
		lf.Size = info.Size()
		files = append(files, lf)
		return nil
	})
	if err != nil {
		err = classifyFileError(prefix, err)
	}
	return &sliceIterator{files: files, pos: -1, err: err}
}

func classifyFileError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
}

// sliceIterator is a BucketIterator over an already listed set of files.
type sliceIterator struct {
	files []LogFile
	pos   int
	err   error
}

func (it *sliceIterator) Iterate() bool {
	if it.pos < len(it.files) {
		it.pos++
	}
	return it.pos < len(it.files)
}

func (it *sliceIterator) Current() LogFile {
	if it.pos < 0 || it.pos >= len(it.files) {
		return LogFile{}
	}
	return it.files[it.pos]
}

func (it *sliceIterator) Close() error {
	it.pos = len(it.files)
	return it.err
}

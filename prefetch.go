package vpcflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

// Semaphore implements the sync.Locker interface
// to help with concurrency control for fetching files.
// The buffer size of C defines the max concurrent callers
// of Lock.
type Semaphore struct {
	C chan struct{}
}

// Lock blocks while the number of holders is at capacity.
func (c Semaphore) Lock() {
	c.C <- struct{}{}
}

// Unlock releases one slot.
func (c Semaphore) Unlock() {
	<-c.C
}

// FetchedObject is a listed object whose content has been downloaded
// into memory.
type FetchedObject struct {
	File LogFile
	Data []byte
	Err  error
}

// Body returns the content as a stream that also supports io.ReaderAt,
// so columnar objects are decoded without another copy.
func (o FetchedObject) Body() io.ReadCloser {
	return bufferedObject{bytes.NewReader(o.Data)}
}

type bufferedObject struct {
	*bytes.Reader
}

func (bufferedObject) Close() error { return nil }

// Prefetcher downloads the objects produced by a BucketIterator in the
// background and hands them back in listing order, so consumers see the
// same sequence as a sequential download would produce.
type Prefetcher struct {
	// Downloader fetches object content, typically an s3manager.Downloader.
	Downloader s3manageriface.DownloaderAPI
	// BucketIterator is the source of objects to fetch.
	BucketIterator BucketIterator
	// Lock bounds concurrent downloads. A sync.Mutex gives sequential
	// downloads, a Semaphore allows up to N at once.
	Lock sync.Locker
	// MaxBytes bounds how much fetched but unconsumed content is held in
	// memory. A single object larger than MaxBytes is still fetched once
	// the buffer is empty.
	MaxBytes int64

	mu       sync.Mutex
	drained  *sync.Cond
	buffered int64
	slots    chan chan FetchedObject
	cancel   context.CancelFunc
	listErr  error
}

// NewPrefetcher builds a Prefetcher on an S3 client with up to
// maxConcurrent downloads in flight.
func NewPrefetcher(downloader s3manageriface.DownloaderAPI, iter BucketIterator, maxBytes int64, maxConcurrent int) *Prefetcher {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Prefetcher{
		Downloader:     downloader,
		BucketIterator: iter,
		Lock:           Semaphore{C: make(chan struct{}, maxConcurrent)},
		MaxBytes:       maxBytes,
	}
}

// Start begins listing and downloading until the iterator is exhausted
// or ctx is cancelled. Results are read with Next.
func (f *Prefetcher) Start(ctx context.Context) {
	ctx, f.cancel = context.WithCancel(ctx)
	f.drained = sync.NewCond(&f.mu)
	f.slots = make(chan chan FetchedObject, 1024)
	go f.prefetch(ctx)
}

// Close stops prefetching, discards anything not yet consumed and
// returns the listing failure, if any.
func (f *Prefetcher) Close() error {
	f.cancel()
	for {
		if _, ok := f.Next(); !ok {
			break
		}
	}
	return f.Err()
}

func (f *Prefetcher) prefetch(ctx context.Context) {
	defer close(f.slots)
	var wg sync.WaitGroup
	for ctx.Err() == nil && f.BucketIterator.Iterate() {
		var curr = f.BucketIterator.Current()
		// Files of zero size don't have content to download. This is
		// commonly due to directories showing up as objects.
		if curr.Size == 0 {
			continue
		}
		f.reserve(curr.Size)
		var slot = make(chan FetchedObject, 1)
		f.slots <- slot
		wg.Add(1)
		go func(lf LogFile) {
			defer wg.Done()
			slot <- f.fetch(ctx, lf)
		}(curr)
	}
	if err := f.BucketIterator.Close(); err != nil {
		f.mu.Lock()
		f.listErr = err
		f.mu.Unlock()
	}
	wg.Wait()
}

// reserve waits until size fits within MaxBytes, or until nothing is
// buffered at all.
func (f *Prefetcher) reserve(size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.MaxBytes > 0 && f.buffered != 0 && f.buffered+size > f.MaxBytes {
		f.drained.Wait()
	}
	f.buffered += size
}

func (f *Prefetcher) release(size int64) {
	f.mu.Lock()
	f.buffered -= size
	f.mu.Unlock()
	f.drained.Broadcast()
}

func (f *Prefetcher) fetch(ctx context.Context, lf LogFile) FetchedObject {
	f.Lock.Lock()
	defer f.Lock.Unlock()

	var buff = aws.NewWriteAtBuffer(make([]byte, 0, int(lf.Size)))
	var _, err = f.Downloader.DownloadWithContext(ctx, buff, &s3.GetObjectInput{
		Key:    aws.String(lf.Key),
		Bucket: aws.String(lf.Bucket),
	})
	if err != nil {
		return FetchedObject{File: lf, Err: classifyS3Error(lf.Bucket, lf.Key, err)}
	}
	return FetchedObject{File: lf, Data: buff.Bytes()}
}

// Next returns the next object in listing order. The boolean is false
// once every listed object has been returned; Err then reports a listing
// failure, if any. Each returned object releases its share of MaxBytes.
func (f *Prefetcher) Next() (FetchedObject, bool) {
	var slot, ok = <-f.slots
	if !ok {
		return FetchedObject{}, false
	}
	var obj = <-slot
	f.release(obj.File.Size)
	return obj, true
}

// Err reports the listing failure that stopped prefetching, if any. It
// is only meaningful after Next has returned false.
func (f *Prefetcher) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return fmt.Errorf("listing objects: %w", f.listErr)
	}
	return nil
}

// NewS3Downloader returns an s3manager.Downloader with one part in flight
// per object; concurrency comes from the Prefetcher instead.
func NewS3Downloader(client s3iface.S3API) *s3manager.Downloader {
	return s3manager.NewDownloaderWithClient(client, func(d *s3manager.Downloader) {
		d.Concurrency = 1
	})
}

package service

import (
	"context"
	"image"
	"sync"

	"github.com/nicky-ayoub/ebitview/internal/pixels"
)

// Job asks the loader to decode one file.
type Job struct {
	Token uint64
	Path  string
}

// Result holds the outcome of a background load. Pixels is the premultiplied
// form of Buffer, ready to be uploaded to a surface on the main thread.
type Result struct {
	Token  uint64
	Path   string
	Buffer *pixels.ImageBuffer
	Pixels *image.RGBA
	Info   *ImageInfo
	Err    error
}

// Loader decodes images on a background goroutine. Results are delivered on
// Results in submission order; the receiver decides which ones are stale.
type Loader struct {
	images  *ImageService
	jobs    chan Job
	results chan Result

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewLoader starts a loader backed by is.
func NewLoader(is *ImageService) *Loader {
	l := &Loader{
		images:  is,
		jobs:    make(chan Job, 1),
		results: make(chan Result, 4),
		done:    make(chan struct{}),
	}
	l.wg.Add(1)
	go l.run()
	return l
}

// Submit queues a job. It blocks until the worker accepts the job, ctx is
// cancelled or the loader is closed.
func (l *Loader) Submit(ctx context.Context, job Job) error {
	select {
	case <-l.done:
		return context.Canceled
	default:
	}
	select {
	case l.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return context.Canceled
	}
}

// Results returns the channel on which finished loads arrive.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Close stops the worker and waits for it to exit.
func (l *Loader) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
}

// run is a background worker that loads full-size images.
func (l *Loader) run() {
	defer l.wg.Done()
	for {
		select {
		case job := <-l.jobs:
			res := l.load(job)
			// Send the result back to the main thread.
			select {
			case l.results <- res:
			case <-l.done:
				return
			}
		case <-l.done:
			return
		}
	}
}

func (l *Loader) load(job Job) Result {
	res := Result{Token: job.Token, Path: job.Path}
	buf, err := l.images.LoadFromPath(job.Path)
	if err != nil {
		res.Err = err
		return res
	}
	rgba, err := pixels.Premultiply(buf)
	if err != nil {
		res.Err = err
		return res
	}
	res.Buffer = buf
	res.Pixels = rgba
	// Metadata is optional; a file that decodes always has a config.
	res.Info, _ = l.images.GetImageInfo(job.Path)
	return res
}

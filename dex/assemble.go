package dex

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/dexmodel/errors"
)

// BuildFunc assembles the class at position i of the class_defs table.
type BuildFunc func(ctx context.Context, i int) (*Class, error)

// Assemble builds n classes concurrently and returns them keyed by class
// index. Classes are independent, so build may run in any order. The first
// error cancels the remaining work and is returned wrapped in an
// errors.ClassError.
func Assemble(ctx context.Context, opts Options, n int, build BuildFunc) (map[uint32]*Class, error) {
	if n <= 0 {
		return map[uint32]*Class{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := Logger()
	jobs := make(chan int)
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
		classes  = make(map[uint32]*Class, n)
	)

	fail := func(i int, err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = &errors.ClassError{ClassIndex: i, Err: err}
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				c, err := build(ctx, i)
				if err != nil {
					fail(i, err)
					continue
				}
				if c == nil {
					fail(i, errors.InvalidData(errors.PhaseAssemble, nil, "build returned no class"))
					continue
				}
				mu.Lock()
				if _, dup := classes[c.classIndex]; dup {
					mu.Unlock()
					fail(i, errors.New(errors.PhaseAssemble, errors.KindDuplicate).
						Value(c.classIndex).
						Detail("class index %d defined twice", c.classIndex).
						Build())
					continue
				}
				classes[c.classIndex] = c
				mu.Unlock()
				log.Debug("assembled class",
					zap.Int("position", i),
					zap.Uint32("class_index", c.classIndex))
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

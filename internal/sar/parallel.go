package sar

import (
	"runtime"
	"sync"
)

// forEachRow runs a worker pool over rows [0, n). newWorker is called once
// per worker goroutine and returns the per-row function together with an
// optional release hook, so workers can own scratch state.
func forEachRow(n, workers int, newWorker func() (func(row int), func())) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		run, release := newWorker()
		for i := 0; i < n; i++ {
			run(i)
		}
		if release != nil {
			release()
		}
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			run, release := newWorker()
			if release != nil {
				defer release()
			}
			for row := range jobs {
				run(row)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// stateless adapts a plain row function for forEachRow.
func stateless(fn func(row int)) func() (func(int), func()) {
	return func() (func(int), func()) { return fn, nil }
}

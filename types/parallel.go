package types

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// RunParallel runs the comparison's experiments concurrently on the
// given number of workers, with one live status line per experiment.
// Each experiment owns its policy, environment and traces, so runs do
// not share mutable state.
func (c *Comparison) RunParallel(workers int) {
	n := len(c.Experiments)
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	statuses := make([]string, n)
	var statusLock sync.Mutex
	for i, e := range c.Experiments {
		statuses[i] = fmt.Sprintf("Experiment: %s, pending", e.name)
	}

	writer := uilive.New()
	lines := make([]io.Writer, n)
	lines[0] = writer
	for i := 1; i < n; i++ {
		lines[i] = writer.Newline()
	}
	printerDone := make(chan struct{})
	printStatuses := func() {
		statusLock.Lock()
		for i := 0; i < n; i++ {
			fmt.Fprintf(lines[i], "%s\n", statuses[i])
		}
		statusLock.Unlock()
		writer.Flush()
	}
	go func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-printerDone:
				return
			case <-ticker.C:
				printStatuses()
			}
		}
	}()

	names := make([]string, n)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := c.Experiments[i]
				e.run(func(episode int) {
					statusLock.Lock()
					statuses[i] = fmt.Sprintf("Experiment: %s, Episode: %d/%d", e.name, episode+1, e.config.Episodes)
					statusLock.Unlock()
				})
				names[i] = e.name
				statusLock.Lock()
				statuses[i] = fmt.Sprintf("Experiment: %s, done", e.name)
				statusLock.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(printerDone)
	printStatuses()

	c.compare(names)
}

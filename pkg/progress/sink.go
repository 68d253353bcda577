/*
   Copyright 2020 Docker Compose CLI authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package progress

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dockerutil/dashboard/pkg/utils"
)

// NewLineSink adapts an external process's combined stdout/stderr into
// ring messages, one per line, at the given severity. Close flushes any
// trailing partial line as a final message.
func NewLineSink(p Producer, level Level) io.WriteCloser {
	return utils.GetWriter(func(line string) {
		p.Message(level, line)
	})
}

// NewBatchedLineSink is like NewLineSink, but coalesces lines that arrive
// within quiet of one another into a single joined message instead of
// emitting one ring message per line. Use it in front of chatty
// subprocesses (package managers, compilers) that would otherwise flood
// the ring with single-line noise. Close stops the batching goroutine
// after flushing any lines still pending.
func NewBatchedLineSink(p Producer, level Level, quiet time.Duration) io.WriteCloser {
	ctx, cancel := context.WithCancel(context.Background())
	// Lines carry their arrival number so repeats stay distinct in the
	// debouncer's set and each batch can be put back in arrival order.
	type seqLine struct {
		seq  uint64
		text string
	}
	lines := make(chan seqLine)
	batches := utils.BatchDebounce(ctx, clockwork.NewRealClock(), quiet, lines)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for batch := range batches {
			sort.Slice(batch, func(i, j int) bool { return batch[i].seq < batch[j].seq })
			texts := make([]string, len(batch))
			for i, l := range batch {
				texts[i] = l.text
			}
			p.Message(level, strings.Join(texts, "\n"))
		}
	}()

	var seq uint64
	w := utils.GetWriter(func(line string) {
		seq++
		lines <- seqLine{seq: seq, text: line}
	})
	return &batchedSinkCloser{WriteCloser: w, closeInput: func() { close(lines) }, cancel: cancel, done: done}
}

// batchedSinkCloser stops the batching goroutine and waits for its final
// flush before Close returns, so a caller that Closes and immediately
// reads the ring sees every line the sink was given.
type batchedSinkCloser struct {
	io.WriteCloser
	closeInput func()
	cancel     context.CancelFunc
	done       <-chan struct{}
}

func (c *batchedSinkCloser) Close() error {
	err := c.WriteCloser.Close()
	c.closeInput()
	<-c.done
	c.cancel()
	return err
}

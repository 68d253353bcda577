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

package utils

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// BatchDebounce groups distinct values of T arriving on input within a
// sliding quiet period and emits them as a batch on the returned channel,
// generalized from the teacher's file-watch event debouncer to any
// comparable payload (here, message lines rather than FileEvents).
//
// The returned channel is closed when the debouncer is stopped via
// context cancellation or by closing the input channel.
func BatchDebounce[T comparable](ctx context.Context, clock clockwork.Clock, quiet time.Duration, input <-chan T) <-chan []T {
	out := make(chan []T)
	go func() {
		defer close(out)
		seen := make(Set[T])
		flush := func() {
			if len(seen) == 0 {
				return
			}
			logrus.Debugf("debounce: flushing %d batched values", len(seen))
			out <- seen.Elements()
			seen = make(Set[T])
		}

		t := clock.NewTicker(quiet)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.Chan():
				flush()
			case v, ok := <-input:
				if !ok {
					flush()
					return
				}
				seen.Add(v)
				t.Reset(quiet)
			}
		}
	}()
	return out
}

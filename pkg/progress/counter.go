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

import "sync/atomic"

// Step is an unsigned progress count.
type Step uint64

// Counter is a shared, heap-allocated atomic step counter. Increments
// use relaxed ordering; Set is a plain atomic store. It is safe to hold
// a Counter handle after the Item that created it has been dropped.
type Counter struct {
	v *atomic.Uint64
}

// NewCounter returns a Counter starting at 0.
func NewCounter() Counter {
	return Counter{v: &atomic.Uint64{}}
}

// Get reads the current value.
func (c Counter) Get() Step {
	if c.v == nil {
		return 0
	}
	return Step(c.v.Load())
}

// Set stores an absolute value.
func (c Counter) Set(step Step) {
	if c.v == nil {
		return
	}
	c.v.Store(uint64(step))
}

// Inc increments by 1.
func (c Counter) Inc() {
	c.IncBy(1)
}

// IncBy increments by n.
func (c Counter) IncBy(n Step) {
	if c.v == nil {
		return
	}
	c.v.Add(uint64(n))
}

// valid reports whether the counter has been initialized via NewCounter.
func (c Counter) valid() bool {
	return c.v != nil
}

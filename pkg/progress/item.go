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
	"runtime"
	"sync/atomic"
	"time"
)

// childAllocator hands out the next unused 16-bit child-id under one
// parent row. It wraps silently past 65535, matching Key's own
// wrap-on-overwrite behavior at MaxDepth.
type childAllocator struct {
	next atomic.Uint32
}

func (c *childAllocator) nextID() uint16 {
	return uint16(c.next.Add(1) - 1)
}

// Item is a producer-side handle owning exactly one row of the shared
// TaskMap: dropping it (Close) removes that row. Children created from
// an Item own their own rows and outlive it.
type Item struct {
	core     *rootCore
	key      Key
	children childAllocator
	counter  Counter // valid only once Init has installed a Progress
	closed   atomic.Bool
}

func newItem(core *rootCore, key Key, task Task) *Item {
	core.tasks.Insert(key, task)
	it := &Item{core: core, key: key}
	runtime.SetFinalizer(it, func(i *Item) { i.Close() })
	return it
}

// AddChild allocates the next child-id under this Item's key and
// inserts a fresh organizational row for it.
func (it *Item) AddChild(name string) *Item {
	return it.AddChildWithID(name, ID{})
}

// AddChildWithID is AddChild but stamps the new row's opaque id tag.
// If this Item is already at MaxDepth, the child aliases the same Key
// (and therefore the same row) as its parent; both may later call
// Close, and the second is a documented no-op.
func (it *Item) AddChildWithID(name string, id ID) *Item {
	childID := it.children.nextID()
	childKey := it.key.AddChild(childID)
	if it.key.Level() >= MaxDepth {
		childKey = it.key
	}
	return newItem(it.core, childKey, Task{Name: name, ID: id})
}

// Init resets the step counter to 0 and installs a fresh Progress iff
// max or unit is non-nil; otherwise the task becomes organizational
// (Progress cleared).
func (it *Item) Init(max *Step, unit Unit) {
	it.counter = NewCounter()
	var p *Progress
	if max != nil || unit != nil {
		p = &Progress{Step: it.counter, DoneAt: max, Unit: unit, State: Running}
	} else {
		it.counter = Counter{}
	}
	it.core.tasks.Mutate(it.key, func(t *Task) {
		t.Progress = p
	})
}

// Set stores an absolute step value; a no-op if the row is organizational.
func (it *Item) Set(step Step) {
	if it.counter.valid() {
		it.counter.Set(step)
	}
}

// Inc increments the step counter by 1.
func (it *Item) Inc() { it.IncBy(1) }

// IncBy increments the step counter by n.
func (it *Item) IncBy(n Step) {
	if it.counter.valid() {
		it.counter.IncBy(n)
	}
}

// SetMax atomically replaces the upper bound, returning the old one.
func (it *Item) SetMax(max *Step) (old *Step) {
	it.core.tasks.Mutate(it.key, func(t *Task) {
		if t.Progress == nil {
			return
		}
		old = t.Progress.DoneAt
		t.Progress.DoneAt = max
	})
	return old
}

// Running, Blocked and Halted set Progress.State; all are no-ops on an
// organizational task.
func (it *Item) Running() {
	it.core.tasks.Mutate(it.key, func(t *Task) {
		if t.Progress != nil {
			t.Progress.State = Running
			t.Progress.BlockedOrHaltedReason = ""
			t.Progress.ETA = nil
		}
	})
}

func (it *Item) Blocked(reason string, eta *time.Time) {
	it.setHalted(Blocked, reason, eta)
}

func (it *Item) Halted(reason string, eta *time.Time) {
	it.setHalted(Halted, reason, eta)
}

func (it *Item) setHalted(state State, reason string, eta *time.Time) {
	it.core.tasks.Mutate(it.key, func(t *Task) {
		if t.Progress != nil {
			t.Progress.State = state
			t.Progress.BlockedOrHaltedReason = reason
			t.Progress.ETA = eta
		}
	})
}

// SetName replaces the task's display name.
func (it *Item) SetName(name string) {
	it.core.tasks.Mutate(it.key, func(t *Task) {
		t.Name = name
	})
}

// Name returns the task's current name, or ok=false if the row is gone.
func (it *Item) Name() (name string, ok bool) {
	t, present := it.core.tasks.Get(it.key)
	if !present {
		return "", false
	}
	return t.Name, true
}

// ID returns the task's opaque id tag.
func (it *Item) ID() ID {
	t, _ := it.core.tasks.Get(it.key)
	return t.ID
}

// Counter returns the shared step counter, if this task has Progress.
func (it *Item) Counter() (Counter, bool) {
	if !it.counter.valid() {
		return Counter{}, false
	}
	return it.counter, true
}

// Message appends a leveled message to the Root's ring, stamped with
// this task's current name as origin.
func (it *Item) Message(level Level, text string) {
	origin, _ := it.Name()
	it.core.ring.PushOverwrite(level, origin, text)
}

// Info, Done and Fail are convenience wrappers around Message.
func (it *Item) Info(text string) { it.Message(Info, text) }
func (it *Item) Done(text string) { it.Message(Success, text) }
func (it *Item) Fail(text string) { it.Message(Failure, text) }

// Close removes this Item's row from the TaskMap. It never panics, is
// idempotent, and is a documented no-op when the row was already
// removed (MaxDepth aliasing, or a repeated call). A finalizer calls
// Close as a safety net, but code should call it explicitly — Go has no
// deterministic destructor, and GC timing is not a substitute for it.
func (it *Item) Close() {
	if it.closed.Swap(true) {
		return
	}
	it.core.tasks.Remove(it.key)
}

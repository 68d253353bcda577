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
	"sort"
	"sync/atomic"
)

// rootCore is the shared state behind every strong Root handle and every
// WeakRoot. It outlives any single Root value; Root.Close releases one
// strong reference, and a WeakRoot can only Upgrade while at least one
// strong reference remains.
type rootCore struct {
	tasks    *TaskMap
	ring     *MessageRing
	children childAllocator
	refs     atomic.Int64
}

// Root owns the TaskMap and MessageRing for one progress tree. Producers
// call AddChild to get Items; renderers hold a WeakRoot and Upgrade it
// once per tick so a Root can be torn down without renderers leaking it.
type Root struct {
	core *rootCore
}

// WeakRoot is a non-owning handle to a Root; Upgrade fails permanently
// once every strong Root referencing the same core has been Closed.
type WeakRoot struct {
	core *rootCore
}

// NewRoot builds an empty tree and an empty message ring of the given
// capacity.
func NewRoot(initialCapacity, messageBufferCapacity int) *Root {
	core := &rootCore{
		tasks: NewTaskMap(),
		ring:  NewMessageRing(messageBufferCapacity),
	}
	core.refs.Store(1)
	_ = initialCapacity // sizing hint only; TaskMap grows unbounded regardless
	return &Root{core: core}
}

// AddChild inserts a level-1 organizational row and returns its Item.
func (r *Root) AddChild(name string) *Item {
	return r.AddChildWithID(name, ID{})
}

// AddChildWithID is AddChild but stamps the opaque id tag.
func (r *Root) AddChildWithID(name string, id ID) *Item {
	childID := r.core.children.nextID()
	key := Key{}.AddChild(childID)
	return newItem(r.core, key, Task{Name: name, ID: id})
}

// NumTasks is a best-effort current row count.
func (r *Root) NumTasks() int {
	return r.core.tasks.Len()
}

// MessagesCapacity returns the message ring's fixed capacity.
func (r *Root) MessagesCapacity() int {
	return r.core.ring.Capacity()
}

// SortedEntry is one row of a SortedSnapshot: a Key paired with its
// cloned TaskSnapshot, ordered by Key.Less.
type SortedEntry struct {
	Key  Key
	Task TaskSnapshot
}

func (e SortedEntry) EntryKey() Key { return e.Key }

// SortedSnapshot clears out, copies every (Key, TaskSnapshot) pair, and
// sorts by Key's total order. The result is an eventually-consistent
// sample, not a cut: it may observe a child before its parent, or miss
// a row inserted or removed mid-walk.
func (r *Root) SortedSnapshot(out *[]SortedEntry) {
	var raw []snapshotEntry
	r.core.tasks.Snapshot(&raw)
	*out = (*out)[:0]
	for _, e := range raw {
		*out = append(*out, SortedEntry{Key: e.Key, Task: e.Task})
	}
	sort.Slice(*out, func(i, j int) bool {
		return (*out)[i].Key.Less((*out)[j].Key)
	})
}

// CopyMessages copies every ring message oldest-to-newest into out.
func (r *Root) CopyMessages(out *[]Message) {
	r.core.ring.CopyAll(out)
}

// CopyNewMessages copies only messages pushed since prev into out,
// returning the CopyState to chain into the next call.
func (r *Root) CopyNewMessages(out *[]Message, prev *CopyState) CopyState {
	return r.core.ring.CopyNew(out, prev)
}

// Downgrade returns a non-owning handle suitable for a renderer to hold
// across ticks without keeping the Root alive.
func (r *Root) Downgrade() WeakRoot {
	return WeakRoot{core: r.core}
}

// Upgrade returns a new strong Root sharing this core, or ok=false if
// every strong owner has already called Close.
func (w WeakRoot) Upgrade() (root *Root, ok bool) {
	if w.core == nil {
		return nil, false
	}
	for {
		cur := w.core.refs.Load()
		if cur <= 0 {
			return nil, false
		}
		if w.core.refs.CompareAndSwap(cur, cur+1) {
			return &Root{core: w.core}, true
		}
	}
}

// Close releases this Root's strong reference. Once every strong
// reference sharing a core is Closed, outstanding WeakRoots can no
// longer Upgrade. Close is idempotent-safe to call more than once only
// if the caller tracks that itself; Root does not guard against a
// double Close the way Item guards a double drop, since a Root handle
// is typically owned singly by whichever goroutine constructed or
// upgraded it.
func (r *Root) Close() {
	r.core.refs.Add(-1)
}

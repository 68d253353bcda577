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

import "sync"

// shardCount is fixed; Key values are small and cheap to hash, so a
// modest, constant shard count keeps contention low without per-map
// bookkeeping.
const shardCount = 16

type shard struct {
	mu    sync.RWMutex
	tasks map[Key]Task
}

// TaskMap is a concurrent Key -> Task map, sharded by a hash of the Key
// to let many producer goroutines mutate distinct rows without
// contending on a single lock. Rendering sorts the result afterward, so
// TaskMap itself keeps no ordering.
type TaskMap struct {
	shards [shardCount]*shard
}

// NewTaskMap returns an empty, ready-to-use TaskMap.
func NewTaskMap() *TaskMap {
	m := &TaskMap{}
	for i := range m.shards {
		m.shards[i] = &shard{tasks: make(map[Key]Task)}
	}
	return m
}

func (m *TaskMap) shardFor(k Key) *shard {
	return m.shards[hashKey(k)%shardCount]
}

func hashKey(k Key) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < MaxDepth; i++ {
		v, present := k.ComponentAt(i)
		if present {
			h = (h ^ uint32(v)) * 16777619
		}
	}
	return h
}

// Insert stores task under key, overwriting any existing row.
func (m *TaskMap) Insert(key Key, task Task) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.tasks[key] = task
	s.mu.Unlock()
}

// Remove deletes the row for key, if present.
func (m *TaskMap) Remove(key Key) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.tasks, key)
	s.mu.Unlock()
}

// Get returns a copy of the task at key.
func (m *TaskMap) Get(key Key) (Task, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[key]
	return t, ok
}

// Mutate applies fn to the task at key under the shard's write lock, if
// the row still exists; it is a no-op if the row was concurrently
// removed (the MaxDepth-aliasing and drop-race documented behavior).
func (m *TaskMap) Mutate(key Key, fn func(*Task)) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[key]
	if !ok {
		return
	}
	fn(&t)
	s.tasks[key] = t
}

// Len returns the current map size; under concurrent mutation this is a
// guess, not a consistent count.
func (m *TaskMap) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.tasks)
		s.mu.RUnlock()
	}
	return n
}

// snapshotEntry pairs a Key with its cloned TaskSnapshot; it satisfies
// KeyedEntry so ComputeAdjacency can operate directly on sorted slices
// of it.
type snapshotEntry struct {
	Key  Key
	Task TaskSnapshot
}

func (e snapshotEntry) EntryKey() Key { return e.Key }

// Snapshot appends a (Key, TaskSnapshot) pair per row into out, in
// shard-iteration order (the caller sorts afterward). The walk is not a
// consistent cut: concurrent inserts/removes may or may not be observed.
func (m *TaskMap) Snapshot(out *[]snapshotEntry) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, t := range s.tasks {
			*out = append(*out, snapshotEntry{Key: k, Task: snapshotTask(t)})
		}
		s.mu.RUnlock()
	}
}

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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskMap_InsertGetRemove(t *testing.T) {
	m := NewTaskMap()
	var root Key
	k := root.AddChild(1)

	m.Insert(k, Task{Name: "a"})
	task, ok := m.Get(k)
	require.True(t, ok)
	require.Equal(t, "a", task.Name)

	m.Remove(k)
	_, ok = m.Get(k)
	require.False(t, ok)
}

func TestTaskMap_MutateNoopOnMissing(t *testing.T) {
	m := NewTaskMap()
	var root Key
	k := root.AddChild(1)
	require.NotPanics(t, func() {
		m.Mutate(k, func(tk *Task) { tk.Name = "ghost" })
	})
}

func TestTaskMap_ConcurrentInsert(t *testing.T) {
	m := NewTaskMap()
	var root Key
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := root.AddChild(uint16(i))
			m.Insert(k, Task{Name: "x"})
		}(i)
	}
	wg.Wait()
	require.Equal(t, 200, m.Len())
}

func TestTaskMap_Snapshot(t *testing.T) {
	m := NewTaskMap()
	var root Key
	m.Insert(root.AddChild(1), Task{Name: "a"})
	m.Insert(root.AddChild(2), Task{Name: "b"})

	var out []snapshotEntry
	m.Snapshot(&out)
	require.Len(t, out, 2)
}

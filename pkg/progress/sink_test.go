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
	"time"

	"github.com/stretchr/testify/require"
)

// recordingProducer records every Message call; it embeds Discard so it
// satisfies Producer without restating every no-op method.
type recordingProducer struct {
	Producer
	mtx  sync.Mutex
	msgs []string
}

func (r *recordingProducer) Message(level Level, text string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.msgs = append(r.msgs, text)
}

func (r *recordingProducer) snapshot() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	out := make([]string, len(r.msgs))
	copy(out, r.msgs)
	return out
}

func TestNewLineSink_SplitsAndFlushesTrailingLine(t *testing.T) {
	p := &recordingProducer{Producer: Discard}
	w := NewLineSink(p, Info)

	_, err := w.Write([]byte("first\nsecond\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Equal(t, []string{"first", "second", "partial"}, p.snapshot())
}

func TestNewBatchedLineSink_CoalescesAndFlushesOnClose(t *testing.T) {
	p := &recordingProducer{Producer: Discard}
	w := NewBatchedLineSink(p, Info, 10*time.Millisecond)

	_, err := w.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	msgs := p.snapshot()
	require.Len(t, msgs, 1)
	require.Equal(t, "one\ntwo", msgs[0])
}

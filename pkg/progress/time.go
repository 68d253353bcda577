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
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock is the wall-clock source for MessageRing message timestamps;
// Throughput takes its times from the caller instead. It defaults to a
// real clock and can be swapped for a clockwork.FakeClock for
// deterministic timing, the same pattern
// utils.BatchDebounce uses for message-sink batching.
var Clock clockwork.Clock = clockwork.NewRealClock()

func defaultNow() time.Time {
	return Clock.Now()
}

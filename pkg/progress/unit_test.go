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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDisplay_BytesWithPercentAfter(t *testing.T) {
	upper := Step(10_000_000_000)
	out := Display(Bytes{}, Step(1_000_000_000), &upper, PercentAfter)
	require.Equal(t, "1.0GB/10.0GB [10%]", out)
}

func TestDisplay_RangeTruncatesPercentage(t *testing.T) {
	upper := Step(3)
	out := Display(Range{Name: "steps"}, Step(2), &upper, PercentAfter)
	require.Equal(t, "2 of 3 steps [66%]", out)
}

func TestDisplay_NoUpperSuppressesPercentage(t *testing.T) {
	out := Display(Label("files"), Step(4), nil, PercentAfter|PercentBefore)
	require.Equal(t, "4 files", out)
}

func TestTimeUnitFraction(t *testing.T) {
	frac, unit := timeUnitFraction(500 * time.Millisecond)
	require.Equal(t, "ms", unit)
	require.InDelta(t, 500, *frac, 0.001)

	frac, unit = timeUnitFraction(1 * time.Second)
	require.Equal(t, "s", unit)
	require.InDelta(t, 1, *frac, 0.001)

	frac, unit = timeUnitFraction(90 * time.Second)
	require.Equal(t, "m", unit)
	require.InDelta(t, 1.5, *frac, 0.001)
}

func TestModeBitmaskIsDistinct(t *testing.T) {
	require.Equal(t, Mode(1), PercentBefore)
	require.Equal(t, Mode(2), PercentAfter)
	require.Equal(t, Mode(4), ThroughputBefore)
	require.Equal(t, Mode(8), ThroughputAfter)
}

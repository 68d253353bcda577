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

package line

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// §8 Scenario 6: a long line drawn once, then a shorter line at the same
// row, must be padded so its printed width matches the long line's width
// (overwriting the stale tail), and the frame after that needs no padding
// at all since the terminal cells are already blank by then.
func TestApplyOverdraw_PadsShorterLineToPreviousWidth(t *testing.T) {
	long := strings.Repeat("x", 20)
	drawn1, widths1 := applyOverdraw([]string{long}, nil)
	require.Equal(t, []string{long}, drawn1)
	require.Equal(t, []int{20}, widths1)

	short := "abc"
	drawn2, widths2 := applyOverdraw([]string{short}, widths1)
	require.Len(t, drawn2, 1)
	require.Equal(t, 20, term.VisibleWidth(drawn2[0]))
	require.True(t, strings.HasPrefix(drawn2[0], short))
	require.Equal(t, []int{3}, widths2, "the tracked width reflects actual content, not the padded draw width")

	drawn3, widths3 := applyOverdraw([]string{short}, widths2)
	require.Equal(t, []string{short}, drawn3, "no padding needed once the stale tail was already overwritten")
	require.Equal(t, []int{3}, widths3)
}

func TestApplyOverdraw_LeavesLongerLineUnpadded(t *testing.T) {
	drawn, widths := applyOverdraw([]string{"hello"}, []int{2})
	require.Equal(t, []string{"hello"}, drawn)
	require.Equal(t, []int{5}, widths)
}

func TestPadToWidth_IgnoresANSIWhenMeasuring(t *testing.T) {
	colored := "\x1b[32mok\x1b[0m"
	padded := padToWidth(colored, 5)
	require.Equal(t, term.VisibleWidth(colored)+3, term.VisibleWidth(padded))
}

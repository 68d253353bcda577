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

	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// padToWidth space-pads s (by visible width, ANSI codes stripped before
// measuring) up to width, leaving s untouched if it is already wide enough.
func padToWidth(s string, width int) string {
	w := term.VisibleWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// applyOverdraw implements §4.9's overdraw discipline for one frame: any
// line shorter than what was drawn at the same row last frame is padded
// with spaces so it fully overwrites the stale tail instead of leaving it
// on screen. It returns this frame's own (unpadded) visible widths to
// diff against on the next call — once a row has been overwritten with
// blanks, nothing protects it on the frame after that, since the
// terminal cell is genuinely blank by then.
func applyOverdraw(lines []string, prevWidths []int) (out []string, widths []int) {
	out = make([]string, len(lines))
	widths = make([]int, len(lines))
	for i, l := range lines {
		w := term.VisibleWidth(l)
		if i < len(prevWidths) && prevWidths[i] > w {
			l = padToWidth(l, prevWidths[i])
		}
		out[i] = l
		widths[i] = w
	}
	return out, widths
}

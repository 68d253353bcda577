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
	"runtime"
	"time"
)

// spinner animates a running task's leading glyph; once Stop is called
// it freezes on its glyph field, matching a finished or failed row.
type spinner struct {
	start time.Time
	index int
	chars []string
	done  bool
	glyph string
}

func newSpinner() *spinner {
	chars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	glyph := "⠿"
	if runtime.GOOS == "windows" {
		chars = []string{"-"}
		glyph = "-"
	}
	return &spinner{start: time.Now(), chars: chars, glyph: glyph}
}

func (s *spinner) String() string {
	if s.done {
		return s.glyph
	}
	if time.Since(s.start) > 100*time.Millisecond {
		s.index = (s.index + 1) % len(s.chars)
		s.start = time.Now()
	}
	return s.chars[s.index]
}

func (s *spinner) Stop() { s.done = true }

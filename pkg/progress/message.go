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
	"fmt"
	"strings"
	"time"

	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// Level is a message severity, mirroring the teacher's EventStatus but
// scoped to what a log-line can be: informational, a success, or a
// failure (there is no "in progress" message, that's what Progress is for).
type Level int

const (
	Info Level = iota
	Success
	Failure
)

// Message is one entry in a Root's MessageRing.
type Message struct {
	Time   time.Time
	Level  Level
	Origin string
	Body   string
}

// InfoMessage builds an Info-level message with origin stamped by the caller.
func InfoMessage(origin, body string) Message {
	return Message{Time: time.Now(), Level: Info, Origin: origin, Body: body}
}

// SuccessMessage builds a Success-level message.
func SuccessMessage(origin, body string) Message {
	return Message{Time: time.Now(), Level: Success, Origin: origin, Body: body}
}

// FailureMessage builds a Failure-level message.
func FailureMessage(origin, body string) Message {
	return Message{Time: time.Now(), Level: Failure, Origin: origin, Body: body}
}

// ApplyLevelColor colors s by level's severity palette iff ColorAllowed,
// shared by both renderers so neither hand-rolls its own palette lookup.
func ApplyLevelColor(level Level, s string) string {
	if !ColorAllowed() {
		return s
	}
	return colorFor(level)(s)
}

// OriginWidthTracker keeps the widest message origin observed so far
// within a render session, per §4.9: the origin column only ever grows,
// it never shrinks back down as shorter origins come and go.
type OriginWidthTracker struct {
	max int
}

// Observe records origin's visible width and returns the running max.
func (t *OriginWidthTracker) Observe(origin string) int {
	if w := term.VisibleWidth(origin); w > t.max {
		t.max = w
	}
	return t.max
}

// FormatMessageLine renders "[15:04:05] ORIGIN → body" per §4.9, right
// aligning ORIGIN to originWidth (typically an OriginWidthTracker's
// running max) and coloring the whole line by severity.
func FormatMessageLine(m Message, originWidth int) string {
	origin := m.Origin
	if pad := originWidth - term.VisibleWidth(origin); pad > 0 {
		origin = strings.Repeat(" ", pad) + origin
	}
	line := fmt.Sprintf("[%s] %s → %s", m.Time.Format("15:04:05"), origin, m.Body)
	return ApplyLevelColor(m.Level, line)
}

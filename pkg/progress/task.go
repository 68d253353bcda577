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

	"github.com/google/uuid"
)

// ID is a stable 4-byte opaque task tag; the zero value is the default.
type ID [4]byte

// NewID mints a fresh opaque tag from the leading 4 bytes of a random
// UUID, for callers that want a stable identity without managing one
// themselves (AddChildWithID's id argument).
func NewID() ID {
	u := uuid.New()
	var id ID
	copy(id[:], u[:4])
	return id
}

// State describes what a task with Progress is currently doing.
type State int

const (
	Running State = iota
	Blocked
	Halted
)

// Unit formats a step/bound pair for display; see unit.go.
type Unit interface {
	DisplayCurrentValue(w Writer, value Step, upper *Step)
	DisplayUpperBound(w Writer, upper Step, value Step)
	DisplayUnit(w Writer, value Step)
	DisplayPercentage(w Writer, fraction float64)
	Separator(w Writer, value Step, upper *Step)
	FractionAndTimeUnit(d time.Duration) (*float64, string)
}

// Writer is the minimal sink Unit implementations render into; *strings.Builder
// and bytes.Buffer both satisfy it.
type Writer interface {
	WriteString(s string) (int, error)
}

// Progress is present on leaf tasks that report a step count; its
// absence marks a task as a purely organizational node.
type Progress struct {
	Step         Counter
	DoneAt       *Step
	Unit         Unit
	State        State
	BlockedOrHaltedReason string
	ETA          *time.Time
}

// Fraction returns step/done_at clamped to [0,1]; ok is false when
// done_at is unbounded (None).
func (p *Progress) Fraction() (fraction float64, ok bool) {
	if p == nil || p.DoneAt == nil || *p.DoneAt == 0 {
		return 0, false
	}
	f := float64(p.Step.Get()) / float64(*p.DoneAt)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

// Task is a node in the progress tree: a user-facing name, a stable id,
// and an optional Progress. A nil Progress means "organizational node".
type Task struct {
	Name     string
	ID       ID
	Progress *Progress
}

// TaskSnapshot is a renderer-local, cloned copy of a Task: name, id and
// Progress fields other than Step are cloned, and Step is a fresh atomic
// read taken at snapshot time.
type TaskSnapshot struct {
	Name     string
	ID       ID
	HasProgress bool
	Step     Step
	DoneAt   *Step
	Unit     Unit
	State    State
	Reason   string
	ETA      *time.Time
}

func snapshotTask(t Task) TaskSnapshot {
	s := TaskSnapshot{Name: t.Name, ID: t.ID}
	if t.Progress != nil {
		s.HasProgress = true
		s.Step = t.Progress.Step.Get()
		s.DoneAt = t.Progress.DoneAt
		s.Unit = t.Progress.Unit
		s.State = t.Progress.State
		s.Reason = t.Progress.BlockedOrHaltedReason
		s.ETA = t.Progress.ETA
	}
	return s
}

// Fraction mirrors Progress.Fraction for a snapshot.
func (s TaskSnapshot) Fraction() (float64, bool) {
	if !s.HasProgress || s.DoneAt == nil || *s.DoneAt == 0 {
		return 0, false
	}
	f := float64(s.Step) / float64(*s.DoneAt)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

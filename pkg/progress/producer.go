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

import "time"

// Producer is the surface call sites report progress through; *Item
// satisfies it, and so does Discard, so a caller can make progress
// reporting optional without branching.
type Producer interface {
	AddChild(name string) *Item
	AddChildWithID(name string, id ID) *Item
	Init(max *Step, unit Unit)
	Set(step Step)
	Inc()
	IncBy(n Step)
	SetMax(max *Step) *Step
	Running()
	Blocked(reason string, eta *time.Time)
	Halted(reason string, eta *time.Time)
	SetName(name string)
	Message(level Level, text string)
	Info(text string)
	Done(text string)
	Fail(text string)
	Close()
}

// discardProducer is Discard's implementation: every mutator is a
// no-op. AddChild/AddChildWithID return nil, since Discard has no
// backing tree to add a row to; callers that recurse into a returned
// child should check for nil the same way they would for a real Item
// whose row may already be gone.
type discardProducer struct{}

// Discard is the Producer equivalent of io.Discard: wire it in wherever
// a caller wants progress reporting to be a free no-op, grounded on the
// original Rust's progress::Discard unit struct.
var Discard Producer = discardProducer{}

var _ Producer = (*Item)(nil)

func (discardProducer) AddChild(string) *Item                { return nil }
func (discardProducer) AddChildWithID(string, ID) *Item       { return nil }
func (discardProducer) Init(*Step, Unit)                      {}
func (discardProducer) Set(Step)                              {}
func (discardProducer) Inc()                                  {}
func (discardProducer) IncBy(Step)                             {}
func (discardProducer) SetMax(*Step) *Step                    { return nil }
func (discardProducer) Running()                              {}
func (discardProducer) Blocked(string, *time.Time)             {}
func (discardProducer) Halted(string, *time.Time)              {}
func (discardProducer) SetName(string)                        {}
func (discardProducer) Message(Level, string)                 {}
func (discardProducer) Info(string)                           {}
func (discardProducer) Done(string)                           {}
func (discardProducer) Fail(string)                           {}
func (discardProducer) Close()                                {}

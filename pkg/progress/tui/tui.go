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

// Package tui implements the full-screen renderer: an alternate-screen
// view with a headline, a task pane, a messages pane and an info pane,
// driven by a merged stream of ticks, raw key events and caller-supplied
// Events. It is grounded on the original prodash tui::engine's
// render_with_input loop, carried over onto the teacher's
// aec/goterm/keyboard stack rather than tui-rs/crossterm.
package tui

import (
	"context"
	"io"
	"time"

	"github.com/dockerutil/dashboard/pkg/progress"
	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// Options configures a render: see DefaultOptions for the values the
// original engine ships as its Default impl.
type Options struct {
	// Title is shown in the headline; SetTitleEvent overrides it at runtime.
	Title string
	// FramesPerSecond paces the ticker driving redraws; <= 0 falls back to
	// DefaultOptions' 10.
	FramesPerSecond float32
	// Throughput enables the per-task rate estimator in the task pane.
	Throughput bool
	// RecomputeColumnWidthEveryNthFrame throttles the tree-column width
	// recompute to every Nth frame instead of every frame; <= 0 means 1.
	RecomputeColumnWidthEveryNthFrame int
	// WindowSize overrides the terminal's probed size when set; a
	// SetWindowSizeEvent takes precedence over this over the probe.
	WindowSize *term.Size
	// StopIfProgressMissing ends the render loop once the WeakRoot can no
	// longer be upgraded, or once a snapshot comes back empty, instead of
	// idling until the caller cancels ctx.
	StopIfProgressMissing bool
}

// DefaultOptions mirrors the original engine's Options::default().
func DefaultOptions() Options {
	return Options{
		Title:                 "Progress Dashboard",
		FramesPerSecond:       10,
		StopIfProgressMissing: true,
	}
}

// Line is one line of caller-supplied info-pane content.
type Line struct {
	// Title renders Text as the info pane's title row instead of a body row.
	Title bool
	Text  string
}

// Interrupt selects how a quit-class key (Esc, q, Ctrl-C, Ctrl-[) is
// handled: Instantly exits the render loop right away; Deferred latches
// the request until a later SetInterruptModeEvent(Instantly) arrives (or
// the interrupt mode itself flips to Instantly), letting a caller finish
// an in-flight unit of work before the screen tears down.
type Interrupt int

const (
	Instantly Interrupt = iota
	Deferred
)

// Event is anything RenderWithInput's merged stream can carry besides the
// internal tick and raw key events: window/title/info changes and
// interrupt-mode switches a caller drives from outside the render loop.
type Event interface{ isEvent() }

// SetWindowSizeEvent overrides the probed terminal size from here on.
type SetWindowSizeEvent struct{ Size term.Size }

// SetTitleEvent replaces the headline title.
type SetTitleEvent struct{ Title string }

// SetInformationEvent replaces the info pane's content.
type SetInformationEvent struct{ Lines []Line }

// SetInterruptModeEvent switches how a subsequent quit key is handled.
type SetInterruptModeEvent struct{ Mode Interrupt }

func (SetWindowSizeEvent) isEvent()   {}
func (SetTitleEvent) isEvent()        {}
func (SetInformationEvent) isEvent()  {}
func (SetInterruptModeEvent) isEvent() {}

// interruptState is the internal InterruptDrawInfo-equivalent state
// machine: mode tracks the active Interrupt, requested latches a quit key
// seen while Deferred.
type interruptState struct {
	mode      Interrupt
	requested bool
}

// handleQuitKey processes a quit-class keypress, returning true if the
// render loop should exit now.
func (s *interruptState) handleQuitKey() bool {
	if s.mode == Instantly {
		return true
	}
	s.requested = true
	return false
}

// setMode processes a SetInterruptModeEvent, returning true if a
// previously latched quit request should now fire.
func (s *interruptState) setMode(mode Interrupt) bool {
	if mode == Instantly {
		exit := s.mode == Deferred && s.requested
		s.mode = Instantly
		s.requested = false
		return exit
	}
	s.mode = Deferred
	return false
}

// renderState is the mutable view state carried between frames: pane
// visibility/scroll offsets, the caller-supplied window size and info
// lines, and the running tree-column width.
type renderState struct {
	title               string
	hideMessages        bool
	messagesFullscreen  bool
	hideInfo            bool
	maximizeInfo        bool
	taskOffset          int
	messageOffset       int
	userWindowSize      *term.Size
	information         []Line
	treeColumnWidth     int
	origins             progress.OriginWidthTracker
}

// Render drives a single renderer over out against weak until ctx is
// cancelled or the fixed quit key bindings fire. It is RenderWithInput
// with no external event stream.
func Render(ctx context.Context, out io.Writer, weak progress.WeakRoot, opts Options) error {
	return RenderWithInput(ctx, out, weak, opts, nil)
}

// RenderWithInput is §6's tui::render_with_input: it merges a periodic
// tick, the terminal's raw key stream and the caller's external events
// into one loop, applying the fixed key-binding table (§4.8) before
// anything else, then redraws the headline/task/messages/info panes each
// time a tick, key or event survives without being absorbed.
func RenderWithInput(ctx context.Context, out io.Writer, weak progress.WeakRoot, opts Options, external <-chan Event) error {
	t := term.NewDefaultTerminal(out)
	return renderWithTerminal(ctx, t, weak, opts, external)
}

func renderWithTerminal(ctx context.Context, t term.Terminal, weak progress.WeakRoot, opts Options, external <-chan Event) error {
	if opts.FramesPerSecond <= 0 {
		opts.FramesPerSecond = 10
	}
	if opts.Title == "" {
		opts.Title = "Progress Dashboard"
	}

	if err := t.EnterAltScreen(); err != nil {
		return err
	}
	defer t.LeaveAltScreen()
	t.HideCursor()
	defer t.ShowCursor()

	keys, stopKeys, err := t.Keys()
	if err != nil {
		return err
	}
	defer stopKeys()

	interval := time.Duration(float64(time.Second) / float64(opts.FramesPerSecond))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	storeEvery := opts.RecomputeColumnWidthEveryNthFrame
	if storeEvery <= 0 {
		storeEvery = 1
	}

	st := &renderState{title: opts.Title, userWindowSize: opts.WindowSize}
	var interrupt interruptState
	var throughput *progress.Throughput
	if opts.Throughput {
		throughput = progress.NewThroughput()
	}
	lastTick := time.Now()

	var entries []progress.SortedEntry
	var messages []progress.Message
	var taskGrid, msgGrid, infoGrid *term.CellGrid
	tick := 0

	for {
		skipRedraw := false

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case kev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			exit := dispatchKey(st, &interrupt, kev)
			if exit {
				return nil
			}
			skipRedraw = !keyHandled(kev)
		case ev, ok := <-external:
			if !ok {
				external = nil
				continue
			}
			switch e := ev.(type) {
			case SetWindowSizeEvent:
				size := e.Size
				st.userWindowSize = &size
			case SetTitleEvent:
				st.title = e.Title
			case SetInformationEvent:
				st.information = e.Lines
			case SetInterruptModeEvent:
				if interrupt.setMode(e.Mode) {
					return nil
				}
			}
		}

		if skipRedraw {
			continue
		}

		root, ok := weak.Upgrade()
		if !ok {
			if opts.StopIfProgressMissing {
				return nil
			}
			continue
		}

		root.SortedSnapshot(&entries)
		if opts.StopIfProgressMissing && len(entries) == 0 {
			root.Close()
			return nil
		}

		now := time.Now()
		if throughput != nil {
			throughput.UpdateElapsed(now, lastTick)
			throughput.Reconcile(entries)
		}
		lastTick = now

		if !st.hideMessages {
			root.CopyMessages(&messages)
		}
		root.Close()

		tick++
		if tick == 1 || tick%storeEvery == 0 {
			st.treeColumnWidth = computeColumnWidth(entries)
		}

		size := t.Size()
		if st.userWindowSize != nil {
			size = *st.userWindowSize
		}

		taskGrid, msgGrid, infoGrid = draw(t, st, entries, messages, throughput, size, interval, taskGrid, msgGrid, infoGrid)
	}
}

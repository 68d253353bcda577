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

// Package line implements the scroll-region-free renderer: one
// overdraw-safe block of lines redrawn in place every tick, the mode a
// plain terminal (or a log file) can still make sense of. It is the Go
// equivalent of the teacher's ttyWriter, rebuilt against a
// progress.Root tree instead of a flat Event map.
package line

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/buger/goterm"
	"github.com/hashicorp/go-multierror"
	"github.com/morikuni/aec"
	"github.com/sirupsen/logrus"

	"github.com/dockerutil/dashboard/pkg/progress"
	"github.com/dockerutil/dashboard/pkg/utils"
)

// Renderer redraws a progress.Root's current tree in place, once per
// tick, and appends any new ring messages below the redrawn block once
// they've scrolled out of the overwrite region.
type Renderer struct {
	weak     progress.WeakRoot
	out      io.Writer
	interval time.Duration
	mode     progress.Mode

	mtx        sync.Mutex
	done       chan struct{}
	numLines   int
	prevWidths []int
	repeated   bool
	spinners   map[progress.Key]*spinner
	msgState   progress.CopyState
	originW    progress.OriginWidthTracker
}

// NewRenderer builds a Renderer that polls root every interval
// (100ms matches the teacher's ttyWriter ticker) and writes to out.
func NewRenderer(root progress.WeakRoot, out io.Writer, interval time.Duration) *Renderer {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Renderer{
		weak:     root,
		out:      out,
		interval: interval,
		mode:     progress.PercentAfter,
		done:     make(chan struct{}),
		spinners: make(map[progress.Key]*spinner),
	}
}

// Start runs the redraw loop until ctx is cancelled or Stop is called,
// drawing one final frame before returning (mirroring ttyWriter.Start's
// print-then-return-on-<-ctx.Done()/<-w.done shape).
func (r *Renderer) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.renderAndLog()
			r.drainMessages()
			return
		case <-r.done:
			r.renderAndLog()
			r.drainMessages()
			return
		case <-ticker.C:
			r.renderAndLog()
			r.drainMessages()
		}
	}
}

// Stop ends the redraw loop after one final frame.
func (r *Renderer) Stop() { close(r.done) }

// renderAndLog runs render and logs (rather than propagates) any
// aggregated write failure: a frame a terminal failed to fully draw is
// not fatal to the caller's actual work, only to this tick's visuals.
func (r *Renderer) renderAndLog() {
	if err := r.render(); err != nil {
		logrus.WithError(err).Debug("progress: frame draw had write errors")
	}
}

// render draws one frame, aggregating every write's error (if any) via
// multierror the way the teacher aggregates concurrent fan-out errors
// elsewhere in the codebase, rather than stopping the frame at the
// first failed write.
func (r *Renderer) render() error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	root, ok := r.weak.Upgrade()
	if !ok {
		return nil
	}
	defer root.Close()

	var entries []progress.SortedEntry
	root.SortedSnapshot(&entries)
	if len(entries) == 0 {
		return nil
	}

	var errs *multierror.Error

	width := goterm.Width()
	b := aec.EmptyBuilder
	for i := 0; i <= r.numLines; i++ {
		b = b.Up(1)
	}
	if !r.repeated {
		b = b.Down(1)
	}
	r.repeated = true
	_, err := fmt.Fprint(r.out, b.Column(0).ANSI)
	errs = multierror.Append(errs, err)
	_, err = fmt.Fprint(r.out, aec.Hide)
	errs = multierror.Append(errs, err)
	defer func() { fmt.Fprint(r.out, aec.Show) }()

	done, total := 0, 0
	for _, e := range entries {
		if e.Task.HasProgress {
			total++
			if f, ok := e.Task.Fraction(); ok && f >= 1 {
				done++
			}
		}
	}
	header := fmt.Sprintf("[+] Running %d/%d", done, total)
	if total != 0 && done == total {
		header = aec.Apply(header, aec.BlueF)
	}

	seen := make(utils.Set[progress.Key], len(entries))
	contentLines := make([]string, 0, len(entries)+1)
	contentLines = append(contentLines, header)
	for i, e := range entries {
		seen.Add(e.Key)
		adjacency := progress.ComputeAdjacency(entries, i)
		contentLines = append(contentLines, r.lineFor(e, adjacency, width))
	}

	drawn, widths := applyOverdraw(contentLines, r.prevWidths)
	for _, l := range drawn {
		_, err = fmt.Fprintln(r.out, l)
		errs = multierror.Append(errs, err)
	}

	// Fewer lines than last frame: the rows below no longer have content
	// to overwrite them, so wipe them explicitly and walk the cursor back
	// up so the next frame's "up by numLines+1" math still lands on the
	// header.
	wiped := 0
	for i := len(contentLines); i < len(r.prevWidths); i++ {
		_, err = fmt.Fprintln(r.out, strings.Repeat(" ", r.prevWidths[i]))
		errs = multierror.Append(errs, err)
		wiped++
	}
	if wiped > 0 {
		b := aec.EmptyBuilder
		for i := 0; i < wiped; i++ {
			b = b.Up(1)
		}
		_, err = fmt.Fprint(r.out, b.Column(0).ANSI)
		errs = multierror.Append(errs, err)
	}

	r.numLines = len(entries)
	r.prevWidths = widths

	for k, s := range r.spinners {
		if !seen.Has(k) {
			s.Stop()
			delete(r.spinners, k)
		}
	}

	return errs.ErrorOrNil()
}

func (r *Renderer) lineFor(e progress.SortedEntry, adjacency []progress.Adjacency, width int) string {
	prefix := treePrefix(adjacency)

	sp, ok := r.spinners[e.Key]
	if !ok {
		sp = newSpinner()
		r.spinners[e.Key] = sp
	}
	glyph := sp.String()
	if e.Task.HasProgress {
		switch e.Task.State {
		case progress.Blocked, progress.Halted:
			sp.Stop()
			glyph = "◐"
		default:
			if f, ok := e.Task.Fraction(); ok && f >= 1 {
				sp.Stop()
			}
		}
	}

	status := ""
	if e.Task.HasProgress && e.Task.Unit != nil {
		status = progress.Display(e.Task.Unit, e.Task.Step, e.Task.DoneAt, r.mode)
	}

	text := fmt.Sprintf("%s%s %s", prefix, glyph, e.Task.Name)
	if status != "" {
		text = text + "  " + status
	}
	if len(text) > width && width > 0 {
		text = text[:width]
	}
	return text
}

// treePrefix renders adjacency into the "│  ", "├─ ", "└─ " glyphs a
// terminal tree view uses, one triplet per ancestor level.
func treePrefix(adjacency []progress.Adjacency) string {
	if len(adjacency) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range adjacency {
		last := i == len(adjacency)-1
		switch {
		case !last:
			if a == progress.Below || a == progress.AboveAndBelow {
				b.WriteString("│  ")
			} else {
				b.WriteString("   ")
			}
		case a == progress.Below || a == progress.AboveAndBelow:
			b.WriteString("├─ ")
		default:
			b.WriteString("└─ ")
		}
	}
	return b.String()
}

func (r *Renderer) drainMessages() {
	var msgs []progress.Message
	root, ok := r.weak.Upgrade()
	if !ok {
		return
	}
	defer root.Close()
	r.msgState = root.CopyNewMessages(&msgs, &r.msgState)
	for _, m := range msgs {
		fmt.Fprintln(r.out, FormatMessage(m, r.originW.Observe(m.Origin)))
	}
}

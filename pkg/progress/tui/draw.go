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

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dockerutil/dashboard/pkg/progress"
	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// draw renders one frame: headline at row 0, then the task pane, messages
// pane and info pane sharing the remaining rows per §4.8, diff-flushed
// against each pane's previous grid.
func draw(
	t term.Terminal,
	st *renderState,
	entries []progress.SortedEntry,
	messages []progress.Message,
	throughput *progress.Throughput,
	size term.Size,
	frameInterval time.Duration,
	prevTask, prevMsg, prevInfo *term.CellGrid,
) (task, msg, info *term.CellGrid) {
	t.MoveTo(0, 0)
	t.ClearLine()
	t.Write(headline(entries, st.title, frameInterval, size.Width))

	available := size.Height - 1
	if available < 0 {
		available = 0
	}

	infoLines := infoPaneLines(st, size.Width)
	infoRows := 0
	if !st.hideInfo && len(infoLines) > 0 {
		infoRows = len(infoLines)
		if max := available / 4; infoRows > max {
			infoRows = max
		}
	}
	if st.maximizeInfo && !st.hideInfo {
		infoRows = available
	}
	remaining := available - infoRows
	if remaining < 0 {
		remaining = 0
	}

	var taskRows, msgRows int
	switch {
	case st.maximizeInfo && !st.hideInfo:
		taskRows, msgRows = 0, 0
	case st.hideMessages:
		taskRows = remaining
	case st.messagesFullscreen:
		msgRows = remaining
	default:
		taskRows = remaining * 2 / 3
		msgRows = remaining - taskRows
	}

	taskLines := taskPaneLines(entries, st.treeColumnWidth, throughput, size.Width)
	visibleTask := windowed(taskLines, st.taskOffset, taskRows)
	task = term.NewCellGrid(taskRows)
	for i := 0; i < taskRows; i++ {
		if i < len(visibleTask) {
			task.SetRow(i, visibleTask[i])
		} else {
			task.SetRow(i, "")
		}
	}
	task = task.FlushDiff(t, 1, prevTask)

	var msgLines []string
	if !st.hideMessages {
		msgLines = messagesPaneLines(messages, &st.origins, size.Width)
	}
	visibleMsg := windowed(msgLines, st.messageOffset, msgRows)
	msg = term.NewCellGrid(msgRows)
	for i := 0; i < msgRows; i++ {
		if i < len(visibleMsg) {
			msg.SetRow(i, visibleMsg[i])
		} else {
			msg.SetRow(i, "")
		}
	}
	msg = msg.FlushDiff(t, 1+taskRows, prevMsg)

	info = term.NewCellGrid(infoRows)
	for i := 0; i < infoRows; i++ {
		if i < len(infoLines) {
			info.SetRow(i, infoLines[i])
		} else {
			info.SetRow(i, "")
		}
	}
	info = info.FlushDiff(t, 1+taskRows+msgRows, prevInfo)

	return task, msg, info
}

// headline builds the status line: title, running/blocked/organizational
// counts, and (per the original engine) a clock when frames are slower
// than one second apart, since a sub-second ticker makes the clock redraw
// needlessly busy.
func headline(entries []progress.SortedEntry, title string, frameInterval time.Duration, width int) string {
	running, blocked, organizational := 0, 0, 0
	for _, e := range entries {
		switch {
		case !e.Task.HasProgress:
			organizational++
		case e.Task.State == progress.Running:
			running++
		default:
			blocked++
		}
	}
	h := fmt.Sprintf("%s — running %d, blocked %d, organizational %d", title, running, blocked, organizational)
	if frameInterval >= time.Second {
		h += "  " + time.Now().Format("15:04:05")
	}
	if width > 0 && len(h) > width {
		h = h[:width]
	}
	return h
}

func computeColumnWidth(entries []progress.SortedEntry) int {
	w := 0
	for _, e := range entries {
		if l := len(e.Task.Name); l > w {
			w = l
		}
	}
	return w
}

// leafGlyph is §4.10's leaf-column marker: a bullet for level-1 tasks, a
// branch glyph for deeper ones with progress, an ellipsis for purely
// organizational rows.
func leafGlyph(e progress.SortedEntry) string {
	switch {
	case !e.Task.HasProgress:
		return "… "
	case e.Key.Level() <= 1:
		return "• "
	default:
		return "└ "
	}
}

func taskPaneLines(entries []progress.SortedEntry, colWidth int, throughput *progress.Throughput, width int) []string {
	mode := progress.PercentAfter | progress.ThroughputAfter
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		adjacency := progress.ComputeAdjacency(entries, i)
		prefix := treePrefix(adjacency)
		name := prefix + leafGlyph(e) + e.Task.Name
		if pad := colWidth + len(prefix) + 2 - len(name); pad > 0 {
			name += strings.Repeat(" ", pad)
		}
		status := ""
		if e.Task.HasProgress && e.Task.Unit != nil {
			status = progress.Display(e.Task.Unit, e.Task.Step, e.Task.DoneAt, mode)
			if throughput != nil {
				if v := throughput.UpdateAndGet(e.Key, e.Task.Step); v != nil {
					status += " " + v.String()
				}
			}
		}
		line := name + "  " + status
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		lines = append(lines, line)
	}
	return lines
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

func levelBadge(l progress.Level) string {
	switch l {
	case progress.Success:
		return "OK  "
	case progress.Failure:
		return "FAIL"
	default:
		return "INFO"
	}
}

// messageLine renders one message for the TUI's pane: §4.9's
// "[TIME] ORIGIN → body" plus the level-badge column §4.8 calls for.
func messageLine(m progress.Message, originWidth int) string {
	origin := m.Origin
	if pad := originWidth - term.VisibleWidth(origin); pad > 0 {
		origin = strings.Repeat(" ", pad) + origin
	}
	line := fmt.Sprintf("[%s] %s %s → %s", m.Time.Format("15:04:05"), levelBadge(m.Level), origin, m.Body)
	return progress.ApplyLevelColor(m.Level, line)
}

func messagesPaneLines(messages []progress.Message, origins *progress.OriginWidthTracker, width int) []string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.Body == "" {
			continue
		}
		w := origins.Observe(m.Origin)
		line := messageLine(m, w)
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		lines = append(lines, line)
	}
	return lines
}

func infoPaneLines(st *renderState, width int) []string {
	lines := make([]string, 0, len(st.information))
	for _, l := range st.information {
		text := l.Text
		if l.Title {
			text = strings.ToUpper(text)
		}
		if width > 0 && len(text) > width {
			text = text[:width]
		}
		lines = append(lines, text)
	}
	return lines
}

// windowed returns up to budget lines of content starting at offset,
// saturating offset to the last available line so scrolling past the end
// just pins to it instead of going blank.
func windowed(lines []string, offset, budget int) []string {
	if budget <= 0 || len(lines) == 0 {
		return nil
	}
	if offset > len(lines)-1 {
		offset = len(lines) - 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + budget
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

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
	"strconv"
	"strings"
	"time"

	units "github.com/docker/go-units"
)

// Mode selects optional adornments a renderer appends around a Unit's
// plain value/bound rendering. Percentage is suppressed whenever the
// upper bound is nil, regardless of Mode.
type Mode int

const ModeNone Mode = 0

// PercentBefore/PercentAfter place "[NN%]" before the value or after the
// unit. Display renders no throughput for ThroughputBefore or
// ThroughputAfter; the tui task pane appends a throughput Value after
// Display's output itself.
const (
	PercentBefore Mode = 1 << iota
	PercentAfter
	ThroughputBefore
	ThroughputAfter
)

// Label is a static, non-dynamic unit: tasks that just want a fixed word
// ("files", "requests") after the numbers.
type Label string

func (l Label) DisplayCurrentValue(w Writer, value Step, _ *Step) { fprintf(w, "%d", value) }
func (l Label) DisplayUpperBound(w Writer, upper Step, _ Step)    { fprintf(w, "%d", upper) }
func (l Label) DisplayUnit(w Writer, _ Step)                      { w.WriteString(string(l)) }
func (l Label) DisplayPercentage(w Writer, fraction float64)      { defaultPercentage(w, fraction) }
func (l Label) Separator(w Writer, _ Step, _ *Step)               { w.WriteString("/") }
func (l Label) FractionAndTimeUnit(d time.Duration) (*float64, string) {
	return timeUnitFraction(d)
}

// Bytes formats values as SI byte counts (KB/MB/GB, base 1000), via the
// teacher's formatter/units.go dependency (docker/go-units), parameterized
// with CustomSize to get the exact "1.0KB" spacing-free style this
// library's displays use.
type Bytes struct{}

func (Bytes) DisplayCurrentValue(w Writer, value Step, _ *Step) {
	w.WriteString(formatBytes(float64(value)))
}
func (Bytes) DisplayUpperBound(w Writer, upper Step, _ Step) {
	w.WriteString(formatBytes(float64(upper)))
}
func (Bytes) DisplayUnit(_ Writer, _ Step)                 {}
func (Bytes) DisplayPercentage(w Writer, fraction float64) { defaultPercentage(w, fraction) }
func (Bytes) Separator(w Writer, _ Step, _ *Step)          { w.WriteString("/") }
func (Bytes) FractionAndTimeUnit(d time.Duration) (*float64, string) {
	return timeUnitFraction(d)
}

func formatBytes(v float64) string {
	return units.CustomSize("%.1f%s", v, 1000.0, []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"})
}

// DurationUnit renders a Step as a count of seconds broken into
// d/h/m/s components, e.g. 3725 -> "1h2m5s".
type DurationUnit struct{}

func (DurationUnit) DisplayCurrentValue(w Writer, value Step, _ *Step) {
	w.WriteString(formatDurationSteps(value))
}
func (DurationUnit) DisplayUpperBound(w Writer, upper Step, _ Step) {
	w.WriteString(formatDurationSteps(upper))
}
func (DurationUnit) DisplayUnit(_ Writer, _ Step)                 {}
func (DurationUnit) DisplayPercentage(w Writer, fraction float64) { defaultPercentage(w, fraction) }
func (DurationUnit) Separator(w Writer, _ Step, _ *Step)          { w.WriteString("/") }
func (DurationUnit) FractionAndTimeUnit(d time.Duration) (*float64, string) {
	return timeUnitFraction(d)
}

func formatDurationSteps(s Step) string {
	d := time.Duration(s) * time.Second
	days := int64(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int64(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int64(d / time.Minute)
	d -= time.Duration(mins) * time.Minute
	secs := int64(d / time.Second)

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if mins > 0 || hours > 0 || days > 0 {
		fmt.Fprintf(&b, "%dm", mins)
	}
	fmt.Fprintf(&b, "%ds", secs)
	return b.String()
}

// Range renders "N of M <name>", e.g. Range{Name: "steps"}.
type Range struct {
	Name string
}

func (r Range) DisplayCurrentValue(w Writer, value Step, _ *Step) { fprintf(w, "%d", value) }
func (r Range) DisplayUpperBound(w Writer, upper Step, _ Step)    { fprintf(w, "%d", upper) }
func (r Range) DisplayUnit(w Writer, _ Step)                       { w.WriteString(r.Name) }
func (r Range) DisplayPercentage(w Writer, fraction float64)       { defaultPercentage(w, fraction) }
func (r Range) Separator(w Writer, _ Step, _ *Step)                { w.WriteString(" of ") }
func (r Range) FractionAndTimeUnit(d time.Duration) (*float64, string) {
	return timeUnitFraction(d)
}

// HumanOptions tweaks Human's k/M/G rendering.
type HumanOptions struct {
	// Decimals is how many fractional digits to render, default 1.
	Decimals int
}

// Human renders a Step with k/M/G suffixes (base 1000) followed by Name,
// e.g. Human{Name: "objects"}.display(12_345) -> "12.3k objects".
type Human struct {
	Name string
	Opts HumanOptions
}

func (h Human) decimals() int {
	if h.Opts.Decimals > 0 {
		return h.Opts.Decimals
	}
	return 1
}

func (h Human) DisplayCurrentValue(w Writer, value Step, _ *Step) {
	w.WriteString(formatHuman(float64(value), h.decimals()))
}
func (h Human) DisplayUpperBound(w Writer, upper Step, _ Step) {
	w.WriteString(formatHuman(float64(upper), h.decimals()))
}
func (h Human) DisplayUnit(w Writer, _ Step)                 { w.WriteString(h.Name) }
func (h Human) DisplayPercentage(w Writer, fraction float64) { defaultPercentage(w, fraction) }
func (h Human) Separator(w Writer, _ Step, _ *Step)          { w.WriteString("/") }
func (h Human) FractionAndTimeUnit(d time.Duration) (*float64, string) {
	return timeUnitFraction(d)
}

func formatHuman(v float64, decimals int) string {
	format := "%." + strconv.Itoa(decimals) + "f%s"
	return units.CustomSize(format, v, 1000.0, []string{"", "k", "M", "G", "T", "P", "E"})
}

// defaultPercentage truncates rather than rounds, e.g. 2/3 -> 66%, not 67%.
func defaultPercentage(w Writer, fraction float64) {
	fprintf(w, "%d%%", int(fraction*100))
}

// fprintf is fmt.Fprintf narrowed to the Writer interface, which only
// guarantees WriteString (satisfied by both strings.Builder and
// bytes.Buffer without pulling in the full io.Writer surface).
func fprintf(w Writer, format string, args ...interface{}) {
	_, _ = w.WriteString(fmt.Sprintf(format, args...))
}

// timeUnitFraction implements §4.6's time-unit selection shared by every
// built-in Unit: milliseconds below one second, otherwise the largest of
// s/m/h/d whose quotient is still readable without losing precision.
func timeUnitFraction(d time.Duration) (*float64, string) {
	if d < time.Second {
		v := float64(d.Milliseconds())
		return &v, "ms"
	}
	secs := d.Seconds()
	var v float64
	var unit string
	switch {
	case secs < 60:
		v, unit = secs, "s"
	case secs < 3600:
		v, unit = secs/60, "m"
	case secs < 86400:
		v, unit = secs/3600, "h"
	default:
		v, unit = secs/86400, "d"
	}
	return &v, unit
}

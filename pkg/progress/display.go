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

import "strings"

// Display renders value (and, if present, upper) through unit, applying
// mode's percentage adornments. Percentage is suppressed whenever upper
// is nil, no matter what mode requests. The throughput bits of mode are
// ignored: Display renders no throughput.
func Display(unit Unit, value Step, upper *Step, mode Mode) string {
	var b strings.Builder

	fraction, havePct := float64(0), false
	if upper != nil {
		fraction, havePct = fractionOf(value, *upper)
	}

	if mode&PercentBefore != 0 && havePct {
		b.WriteString("[")
		unit.DisplayPercentage(&b, fraction)
		b.WriteString("] ")
	}

	unit.DisplayCurrentValue(&b, value, upper)
	if upper != nil {
		unit.Separator(&b, value, upper)
		unit.DisplayUpperBound(&b, *upper, value)
	}

	var label strings.Builder
	unit.DisplayUnit(&label, value)
	if label.Len() > 0 {
		b.WriteString(" ")
		b.WriteString(label.String())
	}

	if mode&PercentAfter != 0 && havePct {
		b.WriteString(" [")
		unit.DisplayPercentage(&b, fraction)
		b.WriteString("]")
	}

	return b.String()
}

func fractionOf(value, upper Step) (float64, bool) {
	if upper == 0 {
		return 0, false
	}
	f := float64(value) / float64(upper)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f, true
}

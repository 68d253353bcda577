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
	"os"

	"github.com/morikuni/aec"
)

type colorFunc func(string) string

var nocolor colorFunc = func(s string) string { return s }

// Built-in message severity colors, mirroring the teacher's per-state
// DoneColor/ErrorColor palette (pkg/progress/colors.go) but keyed to
// message Level instead of event status.
var (
	InfoColor    colorFunc = nocolor
	SuccessColor colorFunc = aec.GreenF.Apply
	FailureColor colorFunc = aec.RedF.With(aec.Bold).Apply
)

// ColorAllowed implements the clicolors/no-color precedence used by
// crosstermion: NO_COLOR always disables; otherwise CLICOLOR_FORCE set to
// anything but "0" forces color on; otherwise CLICOLOR == "0" disables,
// anything else (including unset, default "1") allows it.
func ColorAllowed() bool {
	return allowClicolorsSpec() && allowByNoColorSpec()
}

func allowByNoColorSpec() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}

func allowClicolorsSpec() bool {
	clicolor := envOrDefault("CLICOLOR", "1")
	force := envOrDefault("CLICOLOR_FORCE", "0")
	return clicolor != "0" || force != "0"
}

func envOrDefault(name, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func colorFor(level Level) colorFunc {
	switch level {
	case Success:
		return SuccessColor
	case Failure:
		return FailureColor
	default:
		return InfoColor
	}
}

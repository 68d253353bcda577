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

// Command dashdemo drives a small, fake two-step build/pull
// pipeline through the progress tree and renders it, either as the
// scrolling line view or the full-screen tui, so the two renderers can
// be exercised end to end without a real caller wired in yet.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dockerutil/dashboard/pkg/progress"
	"github.com/dockerutil/dashboard/pkg/progress/line"
	"github.com/dockerutil/dashboard/pkg/progress/tui"
	"github.com/dockerutil/dashboard/pkg/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	fullScreen := utils.StringToBool(os.Getenv("DASHDEMO_TUI"))

	cmd := &cobra.Command{
		Use:   "dashdemo",
		Short: "Render a simulated task tree with the progress dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), fullScreen)
		},
	}
	cmd.Flags().BoolVar(&fullScreen, "tui", fullScreen, "use the full-screen renderer instead of the scrolling one (default from $DASHDEMO_TUI)")
	return cmd
}

func run(ctx context.Context, fullScreen bool) error {
	root := progress.NewRoot(16, 256)
	defer root.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	work := func(ctx context.Context) error {
		simulate(ctx, root)
		return nil
	}

	if fullScreen {
		go func() {
			_ = work(ctx)
			cancel()
		}()
		err := tui.Render(ctx, os.Stdout, root.Downgrade(), tui.DefaultOptions())
		cancel()
		return err
	}

	return line.Run(ctx, root.Downgrade(), os.Stdout, work)
}

// simulate drives a small build -> pull pipeline, each step a child task
// with a label or byte-count unit, finishing with a message.
func simulate(ctx context.Context, root *progress.Root) {
	build := root.AddChild("build web")
	defer build.Close()
	build.Init(stepPtr(100), progress.Label("steps"))

	for i := 0; i < 100; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(20 * time.Millisecond):
		}
		build.Inc()
		if i == 50 {
			build.Info("halfway there")
		}
	}
	build.Done("build finished")

	pull := root.AddChild("pull postgres:16")
	defer pull.Close()
	total := progress.Step(50 * 1024 * 1024)
	pull.Init(&total, progress.Bytes{})
	for pulled := progress.Step(0); pulled < total; {
		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Millisecond):
		}
		delta := progress.Step(256*1024 + rand.Intn(256*1024))
		pulled += delta
		if pulled > total {
			pulled = total
		}
		pull.Set(pulled)
	}
	pull.Done("pull complete")
}

func stepPtr(s progress.Step) *progress.Step { return &s }

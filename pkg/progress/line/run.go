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

package line

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dockerutil/dashboard/pkg/progress"
)

// Run drives fn to completion while a Renderer redraws root in the
// background, stopping the renderer once fn returns. It mirrors the
// teacher's RunWithStatus: one errgroup goroutine for the drawer, one
// for the caller's work, first error wins.
func Run(ctx context.Context, root progress.WeakRoot, out io.Writer, fn func(context.Context) error) error {
	r := NewRenderer(root, out, 100*time.Millisecond)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		r.Start(egctx)
		return nil
	})
	eg.Go(func() error {
		defer r.Stop()
		return fn(egctx)
	})
	return eg.Wait()
}

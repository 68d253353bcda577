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
	"context"
	"testing"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/require"

	"github.com/dockerutil/dashboard/pkg/progress"
	"github.com/dockerutil/dashboard/pkg/progress/internal/term"
)

// fakeTerminal is the substitute term.Terminal promised by the package's
// doc comment: no real tty, just enough to drive renderWithTerminal and a
// caller-controlled raw key stream.
type fakeTerminal struct {
	size term.Size
	keys chan keyboard.KeyEvent
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{size: term.Size{Width: 80, Height: 24}, keys: make(chan keyboard.KeyEvent, 4)}
}

func (f *fakeTerminal) Size() term.Size      { return f.size }
func (f *fakeTerminal) EnterAltScreen() error { return nil }
func (f *fakeTerminal) LeaveAltScreen()       {}
func (f *fakeTerminal) HideCursor()           {}
func (f *fakeTerminal) ShowCursor()           {}
func (f *fakeTerminal) MoveTo(int, int)       {}
func (f *fakeTerminal) ClearLine()            {}
func (f *fakeTerminal) Write(string)          {}
func (f *fakeTerminal) Keys() (<-chan keyboard.KeyEvent, func(), error) {
	return f.keys, func() {}, nil
}

func TestRenderWithTerminal_QuitKeyExits(t *testing.T) {
	root := progress.NewRoot(4, 8)
	defer root.Close()
	task := root.AddChild("build")
	defer task.Close()

	ft := newFakeTerminal()
	opts := DefaultOptions()
	opts.FramesPerSecond = 1000

	errCh := make(chan error, 1)
	go func() { errCh <- renderWithTerminal(context.Background(), ft, root.Downgrade(), opts, nil) }()

	ft.keys <- keyboard.KeyEvent{Rune: 'q'}

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("renderWithTerminal did not exit after the quit key")
	}
}

func TestRenderWithTerminal_StopsWhenProgressMissing(t *testing.T) {
	root := progress.NewRoot(4, 8)
	weak := root.Downgrade()
	root.Close() // no strong refs remain: Upgrade now fails

	ft := newFakeTerminal()
	opts := DefaultOptions()
	opts.FramesPerSecond = 1000
	opts.StopIfProgressMissing = true

	errCh := make(chan error, 1)
	go func() { errCh <- renderWithTerminal(context.Background(), ft, weak, opts, nil) }()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("renderWithTerminal did not stop once progress was gone")
	}
}

func TestRenderWithTerminal_KeepsRunningWhenStopDisabled(t *testing.T) {
	root := progress.NewRoot(4, 8)
	weak := root.Downgrade()
	root.Close()

	ft := newFakeTerminal()
	opts := DefaultOptions()
	opts.FramesPerSecond = 1000
	opts.StopIfProgressMissing = false

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- renderWithTerminal(ctx, ft, weak, opts, nil) }()

	select {
	case <-errCh:
		t.Fatal("must keep running while StopIfProgressMissing is false")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("did not exit after ctx cancellation")
	}
}

func TestRenderWithTerminal_DeferredInterruptLatchesUntilInstantly(t *testing.T) {
	root := progress.NewRoot(4, 8)
	defer root.Close()
	task := root.AddChild("build")
	defer task.Close()

	ft := newFakeTerminal()
	opts := DefaultOptions()
	opts.FramesPerSecond = 1000

	events := make(chan Event, 4)
	events <- SetInterruptModeEvent{Mode: Deferred}

	errCh := make(chan error, 1)
	go func() { errCh <- renderWithTerminal(context.Background(), ft, root.Downgrade(), opts, events) }()

	time.Sleep(20 * time.Millisecond) // let the mode switch land before the quit key
	ft.keys <- keyboard.KeyEvent{Rune: 'q'}

	select {
	case <-errCh:
		t.Fatal("a deferred quit must not exit immediately")
	case <-time.After(50 * time.Millisecond):
	}

	events <- SetInterruptModeEvent{Mode: Instantly}

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("switching back to Instantly should fire the latched quit")
	}
}

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
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/require"
)

func TestIsQuitKey(t *testing.T) {
	require.True(t, isQuitKey(keyboard.KeyEvent{Rune: 'q'}))
	require.True(t, isQuitKey(keyboard.KeyEvent{Key: keyboard.KeyEsc}))
	require.True(t, isQuitKey(keyboard.KeyEvent{Key: keyboard.KeyCtrlC}))
	require.False(t, isQuitKey(keyboard.KeyEvent{Rune: 'Q'}))
}

func TestDispatchKey_TogglesMessagesPaneAndFullscreen(t *testing.T) {
	st := &renderState{}
	var interrupt interruptState

	require.False(t, dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyToggleMessages}))
	require.True(t, st.hideMessages)

	require.False(t, dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMessagesFullscreen}))
	require.True(t, st.messagesFullscreen)
}

func TestDispatchKey_TogglesInfoPane(t *testing.T) {
	st := &renderState{}
	var interrupt interruptState

	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyToggleInfo})
	require.True(t, st.hideInfo)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMaximizeInfo})
	require.True(t, st.maximizeInfo)
}

func TestDispatchKey_ScrollOffsetsMoveAndSaturateAtZero(t *testing.T) {
	st := &renderState{}
	var interrupt interruptState

	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyTaskScrollDown})
	require.Equal(t, 1, st.taskOffset)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyTaskPageDown})
	require.Equal(t, 11, st.taskOffset)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyTaskPageUp})
	require.Equal(t, 1, st.taskOffset)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyTaskScrollUp})
	require.Equal(t, 0, st.taskOffset)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyTaskScrollUp})
	require.Equal(t, 0, st.taskOffset, "must saturate at zero, not go negative")

	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMessageScrollDown})
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMessagePageDown})
	require.Equal(t, 11, st.messageOffset)
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMessagePageUp})
	dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: keyMessageScrollUp})
	require.Equal(t, 0, st.messageOffset)
}

func TestDispatchKey_QuitKeyDefersToInterruptState(t *testing.T) {
	st := &renderState{}
	var interrupt interruptState // zero value is Instantly
	require.True(t, dispatchKey(st, &interrupt, keyboard.KeyEvent{Rune: 'q'}))
}

func TestKeyHandled(t *testing.T) {
	require.True(t, keyHandled(keyboard.KeyEvent{Rune: 'q'}))
	require.True(t, keyHandled(keyboard.KeyEvent{Rune: keyToggleInfo}))
	require.True(t, keyHandled(keyboard.KeyEvent{Key: keyboard.KeyEsc}))
	require.False(t, keyHandled(keyboard.KeyEvent{Rune: 'z'}), "unbound keys are absorbed without a redraw")
}

func TestInterruptState_InstantlyExitsImmediately(t *testing.T) {
	var s interruptState
	require.True(t, s.handleQuitKey())
}

func TestInterruptState_DeferredLatchesUntilInstantlySwitch(t *testing.T) {
	var s interruptState
	s.setMode(Deferred)

	require.False(t, s.handleQuitKey(), "a deferred quit latches instead of exiting")
	require.True(t, s.requested)

	require.False(t, s.setMode(Deferred), "switching to the same mode again must not fire the latch")
	require.True(t, s.setMode(Instantly), "switching to Instantly fires a latched request")
}

func TestInterruptState_SwitchingToInstantlyWithoutLatchDoesNotExit(t *testing.T) {
	var s interruptState
	s.setMode(Deferred)
	require.False(t, s.setMode(Instantly), "no quit was latched, so nothing should fire")
}

func TestSatSub(t *testing.T) {
	require.Equal(t, 0, satSub(3, 10))
	require.Equal(t, 2, satSub(12, 10))
}

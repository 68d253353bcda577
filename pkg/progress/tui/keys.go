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

import "github.com/eiannone/keyboard"

// §4.8's fixed key-binding table. Esc and Ctrl-[ are the same ASCII
// control code (27) and so collapse onto keyboard.KeyEsc; there is no
// separate caller-supplied table, unlike the reduced KeyBinding design
// this replaces.
const (
	keyToggleMessages     = '`'
	keyMessagesFullscreen = '~'
	keyTaskScrollDown     = 'j'
	keyTaskScrollUp       = 'k'
	keyTaskPageDown       = 'd'
	keyTaskPageUp         = 'u'
	keyMessageScrollDown  = 'J'
	keyMessageScrollUp    = 'K'
	keyMessagePageDown    = 'D'
	keyMessagePageUp      = 'U'
	keyToggleInfo         = '['
	keyMaximizeInfo       = '{'
	keyQuitRune           = 'q'
)

// isQuitKey reports whether ev is one of §4.8's quit-class keys.
func isQuitKey(ev keyboard.KeyEvent) bool {
	return ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC || ev.Rune == keyQuitRune
}

// dispatchKey applies the fixed key-binding table to one raw key event,
// returning true if the render loop should exit now, which happens only
// for a quit-class key in Instantly mode; in Deferred mode a quit key just
// latches the request for a later switch to Instantly.
func dispatchKey(st *renderState, interrupt *interruptState, ev keyboard.KeyEvent) bool {
	if isQuitKey(ev) {
		return interrupt.handleQuitKey()
	}
	switch ev.Rune {
	case keyToggleMessages:
		st.hideMessages = !st.hideMessages
	case keyMessagesFullscreen:
		st.messagesFullscreen = !st.messagesFullscreen
	case keyTaskScrollDown:
		st.taskOffset++
	case keyTaskScrollUp:
		st.taskOffset = satSub(st.taskOffset, 1)
	case keyTaskPageDown:
		st.taskOffset += 10
	case keyTaskPageUp:
		st.taskOffset = satSub(st.taskOffset, 10)
	case keyMessageScrollDown:
		st.messageOffset++
	case keyMessageScrollUp:
		st.messageOffset = satSub(st.messageOffset, 1)
	case keyMessagePageDown:
		st.messageOffset += 10
	case keyMessagePageUp:
		st.messageOffset = satSub(st.messageOffset, 10)
	case keyToggleInfo:
		st.hideInfo = !st.hideInfo
	case keyMaximizeInfo:
		st.maximizeInfo = !st.maximizeInfo
	}
	return false
}

// keyHandled reports whether ev matched a binding in the fixed table;
// unmatched keys are absorbed without triggering a redraw, mirroring the
// original engine's skip_redraw fallthrough arm.
func keyHandled(ev keyboard.KeyEvent) bool {
	if isQuitKey(ev) {
		return true
	}
	switch ev.Rune {
	case keyToggleMessages, keyMessagesFullscreen,
		keyTaskScrollDown, keyTaskScrollUp, keyTaskPageDown, keyTaskPageUp,
		keyMessageScrollDown, keyMessageScrollUp, keyMessagePageDown, keyMessagePageUp,
		keyToggleInfo, keyMaximizeInfo:
		return true
	default:
		return false
	}
}

// satSub is saturating subtraction at zero, used for scroll offsets that
// must never go negative.
func satSub(v, d int) int {
	if v < d {
		return 0
	}
	return v - d
}

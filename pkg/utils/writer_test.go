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

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitWriter(t *testing.T) {
	var lines []string
	w := GetWriter(func(line string) {
		lines = append(lines, line)
	})
	for _, b := range [][]byte{[]byte("h"), []byte("e"), []byte("l"), []byte("l"), []byte("o"), []byte("\n"), []byte("world!\n")} {
		_, err := w.Write(b)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"hello", "world!"}, lines)
}

func TestSplitWriter_CloseFlushesTrailingPartialLine(t *testing.T) {
	var lines []string
	w := GetWriter(func(line string) {
		lines = append(lines, line)
	})
	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, []string{"partial"}, lines)
}

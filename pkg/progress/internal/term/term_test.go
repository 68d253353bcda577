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

package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVisibleWidth_StripsANSI(t *testing.T) {
	require.Equal(t, 5, VisibleWidth("hello"))
	require.Equal(t, 2, VisibleWidth("\x1b[32mok\x1b[0m"))
	require.Equal(t, 0, VisibleWidth(""))
}

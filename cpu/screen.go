// This file is part of hackvm - https://github.com/db47h/hackvm
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpu

import (
	"io"

	"github.com/db47h/hackvm/internal/iox"
)

// Screen size in pixels.
const (
	ScreenWidth  = 512
	ScreenHeight = 256
)

// RenderScreen writes a text rendition of the screen to w, scaled down to fit
// in cols columns. Each character covers a block of n×2n pixels, n being the
// smallest power of two for which the screen fits. A block is drawn as '#' if
// any of its pixels is black. If clear is true, the rendition is preceded by
// the VT100 sequence that clears the terminal and homes the cursor.
func (i *Instance) RenderScreen(w io.Writer, cols int, clear bool) error {
	n := 1
	for n < ScreenWidth && ScreenWidth/n > cols {
		n <<= 1
	}
	ew := iox.NewErrWriter(w)
	if clear {
		ew.Write([]byte{'\033', '[', '2', 'J', '\033', '[', '1', ';', '1', 'H'})
	}
	line := make([]byte, 0, ScreenWidth/n+1)
	for y := 0; y < ScreenHeight; y += 2 * n {
		line = line[:0]
		for x := 0; x < ScreenWidth; x += n {
			c := byte(' ')
			if i.block(x, y, n, 2*n) {
				c = '#'
			}
			line = append(line, c)
		}
		line = append(line, '\n')
		ew.Write(line)
	}
	return ew.Err
}

func (i *Instance) block(x0, y0, w, h int) bool {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if i.ScreenPixel(x, y) {
				return true
			}
		}
	}
	return false
}

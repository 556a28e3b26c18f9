// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmp

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	x, y int
}

func (p point) Key(b *strings.Builder) {
	fmt.Fprintf(b, "point(%d,%d)", p.x, p.y)
}

func Test_GetKey(t *testing.T) {
	assert.Equal(t, "point(3,4)", GetKey(point{x: 3, y: 4}))
	assert.Equal(t, GetKey(point{x: 1, y: 2}), GetKey(point{x: 1, y: 2}))
	assert.NotEqual(t, GetKey(point{x: 1, y: 2}), GetKey(point{x: 2, y: 1}))
}

func Test_MinMaxInt(t *testing.T) {
	assert.Equal(t, 3, MinInt(3, 7))
	assert.Equal(t, 3, MinInt(7, 3))
	assert.Equal(t, 7, MaxInt(3, 7))
	assert.Equal(t, 7, MaxInt(7, 3))
	assert.Equal(t, -7, MinInt(-7, -3))
	assert.Equal(t, 5, MinInt(5, 5))
	assert.Equal(t, 5, MaxInt(5, 5))
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

// Type selects the layout used by DrawSeries.
type Type uint8

const (
	Classic Type = iota
	VerticalBars
	HorizontalBars
	Dots
	VerticalStackedBar
	HorizontalStackedBar
)

// NotRetrievable is returned by Type.String for values outside the enumeration.
const NotRetrievable = "not retrievable"

var typeNames = [...]string{
	Classic:              "Classic",
	VerticalBars:         "VerticalBars",
	HorizontalBars:       "HorizontalBars",
	Dots:                 "Dots",
	VerticalStackedBar:   "VerticalStackedBar",
	HorizontalStackedBar: "HorizontalStackedBar",
}

// String returns the canonical name of t.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return NotRetrievable
}

// Valid reports whether t is one of the declared chart types.
func (t Type) Valid() bool { return int(t) < len(typeNames) }

// ParseType matches name case-sensitively against the canonical names.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return Classic, false
}

// Types lists every chart type in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

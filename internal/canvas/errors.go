/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension is returned for a width or height below 1.
var ErrInvalidDimension = errors.New("invalid dimension")

// DimensionError records the rejected size and the operation that received it.
type DimensionError struct {
	Op            string
	Width, Height int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: invalid dimensions %dx%d (both must be > 0)", e.Op, e.Width, e.Height)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }

func checkDims(op string, w, h int) error {
	if w <= 0 || h <= 0 {
		return &DimensionError{Op: op, Width: w, Height: h}
	}
	return nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package history

import (
	"image"
	"testing"
)

func img(w, h int) *image.RGBA { return image.NewRGBA(image.Rect(0, 0, w, h)) }

func TestUndoRedo(t *testing.T) {
	m := NewManager(Config{})
	a, b, cur := img(1, 1), img(2, 2), img(3, 3)
	m.Push(Snapshot{Image: a, Op: "reset"})
	m.Push(Snapshot{Image: b, Op: "resize"})

	s, ok := m.Undo(cur)
	if !ok || s.Image != b || s.Op != "resize" {
		t.Fatalf("Undo() = %+v, %v; want b", s, ok)
	}
	s, ok = m.Redo(b)
	if !ok || s.Image != cur {
		t.Fatalf("Redo() = %+v, %v; want cur", s, ok)
	}
	if bytes, undo, redo := m.Stats(); undo != 2 || redo != 0 || bytes != len(a.Pix)+len(b.Pix) {
		t.Fatalf("Stats() = %d, %d, %d", bytes, undo, redo)
	}
}

func TestPushClearsRedo(t *testing.T) {
	m := NewManager(Config{})
	m.Push(Snapshot{Image: img(1, 1)})
	m.Undo(img(1, 1))
	m.Push(Snapshot{Image: img(1, 1)})
	if _, ok := m.Redo(nil); ok {
		t.Fatalf("Redo() succeeded after a new Push")
	}
}

func TestCaps(t *testing.T) {
	t.Run("depth", func(t *testing.T) {
		m := NewManager(Config{MaxDepth: 2})
		for i := 0; i < 5; i++ {
			m.Push(Snapshot{Image: img(1, 1)})
		}
		if _, undo, _ := m.Stats(); undo != 2 {
			t.Fatalf("undo depth = %d, want 2", undo)
		}
	})
	t.Run("bytes", func(t *testing.T) {
		m := NewManager(Config{MaxBytes: 100})
		for i := 0; i < 5; i++ {
			m.Push(Snapshot{Image: img(4, 4)}) // 64 bytes each
		}
		bytes, undo, _ := m.Stats()
		if undo != 1 || bytes != 64 {
			t.Fatalf("Stats() = %d bytes, %d entries; want 64, 1", bytes, undo)
		}
	})
}

func TestUndoEmpty(t *testing.T) {
	m := NewManager(Config{})
	if _, ok := m.Undo(img(1, 1)); ok {
		t.Fatalf("Undo() on empty manager = ok")
	}
	m.Push(Snapshot{})
	if _, undo, _ := m.Stats(); undo != 0 {
		t.Fatalf("nil image was recorded")
	}
}

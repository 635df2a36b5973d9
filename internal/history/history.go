/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps the canvas buffers replaced by reset and resize so a
// drawing session can step back to them.
package history

import (
	"image"
	"sync"
	"time"
)

// Snapshot is a replaced canvas buffer. The manager owns Image once pushed.
type Snapshot struct {
	Image *image.RGBA
	Op    string // operation that replaced the buffer, e.g. "resize"
	TS    time.Time
}

func (s Snapshot) size() int {
	if s.Image == nil {
		return 0
	}
	return len(s.Image.Pix)
}

// Config bounds the memory held by a Manager.
type Config struct {
	// MaxBytes is a soft cap on pixel bytes; the oldest snapshots are dropped past it.
	MaxBytes int
	// MaxDepth limits the number of undo entries (0 means unlimited).
	MaxDepth int
}

// Manager is an undo/redo stack of canvas buffers. It is safe for concurrent use.
type Manager struct {
	cfg   Config
	mu    sync.Mutex
	undo  []Snapshot
	redo  []Snapshot
	bytes int
}

func NewManager(cfg Config) *Manager {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 64 * 1024 * 1024
	}
	return &Manager{cfg: cfg}
}

// Push records a replaced buffer and clears the redo stack.
func (m *Manager) Push(s Snapshot) {
	if s.Image == nil {
		return
	}
	if s.TS.IsZero() {
		s.TS = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = append(m.undo, s)
	m.bytes += s.size()
	m.redo = nil
	m.enforceCapsLocked()
}

// Undo pops the newest snapshot. current is kept on the redo stack so Redo
// can bring it back.
func (m *Manager) Undo(current *image.RGBA) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return Snapshot{}, false
	}
	s := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.bytes -= s.size()
	if current != nil {
		m.redo = append(m.redo, Snapshot{Image: current, Op: s.Op, TS: time.Now()})
	}
	return s, true
}

// Redo pops from the redo stack and pushes current back onto the undo stack.
func (m *Manager) Redo(current *image.RGBA) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.redo) == 0 {
		return Snapshot{}, false
	}
	s := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	if current != nil {
		prev := Snapshot{Image: current, Op: s.Op, TS: time.Now()}
		m.undo = append(m.undo, prev)
		m.bytes += prev.size()
		m.enforceCapsLocked()
	}
	return s, true
}

// Clear drops every snapshot.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo, m.redo, m.bytes = nil, nil, 0
}

// Stats returns the pixel bytes held by the undo stack and both stack depths.
func (m *Manager) Stats() (bytes, undoDepth, redoDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes, len(m.undo), len(m.redo)
}

func (m *Manager) enforceCapsLocked() {
	drop := 0
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		drop = len(m.undo) - m.cfg.MaxDepth
	}
	for i := 0; i < drop; i++ {
		m.bytes -= m.undo[i].size()
	}
	// the newest entry stays even when it alone exceeds MaxBytes
	for drop < len(m.undo)-1 && m.bytes > m.cfg.MaxBytes {
		m.bytes -= m.undo[drop].size()
		drop++
	}
	if drop > 0 {
		m.undo = append([]Snapshot(nil), m.undo[drop:]...)
	}
}

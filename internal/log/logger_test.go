/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFileSinkWritesJSON(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "chartmaker.log")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "console", File: fpath, Output: &console})

	l := WithOperation(WithComponent("canvas"), "resize")
	l.Info("canvas resized", slog.Int("width", 200), slog.Int("height", 100))

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	sc := bufio.NewScanner(bytes.NewReader(b))
	var last string
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log %q: %v", last, err)
	}
	for k, want := range map[string]any{"app": "chartmaker", "component": "canvas", "op": "resize", "msg": "canvas resized"} {
		if m[k] != want {
			t.Fatalf("%s = %v, want %v", k, m[k], want)
		}
	}
	if !strings.Contains(console.String(), "width=200") {
		t.Fatalf("console output missing attrs: %q", console.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "warn")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvSource, "YES")
	t.Setenv(EnvFile, "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv() = %+v", opts)
	}
}

func TestLineHandlerFormatting(t *testing.T) {
	var buf bytes.Buffer
	var h slog.Handler = &lineHandler{level: slog.LevelWarn, w: &buf, mu: new(sync.Mutex)}
	if h.Enabled(nil, slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	h = h.WithAttrs([]slog.Attr{slog.String("chart", "Sales")}).WithGroup("series")

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "series rejected", 0)
	r.AddAttrs(slog.String("name", "q1"), slog.Float64("max", 3.5), slog.String("reason", "duplicate name"))
	if err := h.Handle(nil, r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"WRN", "series rejected", "chart=Sales", "series.name=q1", "series.max=3.5", `series.reason="duplicate name"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"DEBUG": slog.LevelDebug, "warning": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo, "bogus": slog.LevelInfo}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"chartmaker/internal/canvas"
	"chartmaker/internal/config"
	"chartmaker/internal/crash"
	applog "chartmaker/internal/log"
	"chartmaker/internal/version"
)

func main() {
	sess := &crash.Session{}
	defer crash.Recover(sess)

	if err := newRootCmd(sess).Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by the subcommands.
type app struct {
	cfg     config.AppConfig
	verbose bool
	sess    *crash.Session
}

func newRootCmd(sess *crash.Session) *cobra.Command {
	a := &app{sess: sess}
	root := &cobra.Command{
		Use:           "chartmaker",
		Short:         "Render labeled charts to PNG, BMP, TIFF or PDF",
		Long:          "chartmaker renders line, bar, dot and stacked bar charts from YAML chart descriptions or spreadsheets.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log at debug level")

	root.AddCommand(newRenderCmd(a), newTypesCmd(), newVersionCmd(), newConfigCmd(a))
	return root
}

// init loads the config and sets up logging from it.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	a.cfg = cfg
	opts := applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
		Output:    cmd.ErrOrStderr(),
	}
	if a.verbose {
		opts.Level = "debug"
	}
	applog.Init(opts)
	l := applog.WithComponent("cli")
	if err != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", err))
	}
	l.Debug("start", slog.String("cmd", cmd.Name()))
	return nil
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the chart types",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range canvas.Types() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if path, err := config.ConfigPath(); err == nil {
				_, _ = fmt.Fprintf(out, "# file: %s\n", path)
			}
			for _, key := range []string{
				"canvas.width", "canvas.height", "canvas.chart_type", "canvas.background",
				"export.format", "export.dpi", "font.file", "font.size",
				"logging.level", "logging.format", "logging.source", "logging.file",
			} {
				if env, ok := config.EnvOverrideFor(key); ok {
					_, _ = fmt.Fprintf(out, "# %s overridden by %s\n", key, env)
				}
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the defaults to the user config file unless it exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists: %s", path)
			}
			if err := config.Save(config.Defaults()); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Created", path)
			return nil
		},
	})
	return cmd
}

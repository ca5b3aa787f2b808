/*
Copyright (C) 2026 the ctu3d authors.
This file is part of ctu3d.

ctu3d is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ctu3d is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ctu3d.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command ctu3d is a thin, cobra-based entry point over the ctu3d package,
// analogous to the teacher's cmd/inmap/main.go binding a concrete
// VarGridConfig and inmaputil.Run to a command tree: here "run" binds a
// synthetic ProblemConfig to NewIntegrator/Step.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindLogLevel registers --log-level once on the first flag set and shares
// the same flag across the rest, the way inmaputil/cmd.go binds one option
// across several related commands instead of redefining it per command.
func bindLogLevel(level *string, sets []*pflag.FlagSet) {
	for i, set := range sets {
		if i != 0 {
			set.AddFlag(sets[0].Lookup("log-level"))
			continue
		}
		set.StringVar(level, "log-level", "info", "log level: debug, info, warn, or error")
	}
}

func main() {
	root := &cobra.Command{
		Use:   "ctu3d",
		Short: "Run synthetic test problems through the ctu3d CTU-CT MHD integrator",
	}
	runCmd := newRunCmd()
	versionCmd := newVersionCmd()
	root.AddCommand(runCmd, versionCmd)

	var logLevel string
	bindLogLevel(&logLevel, []*pflag.FlagSet{root.PersistentFlags(), runCmd.Flags()})

	cobra.OnInitialize(func() {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			lvl = logrus.InfoLevel
		}
		logrus.SetLevel(lvl)
	})

	if err := root.Execute(); err != nil {
		logrus.WithError(err).Error("ctu3d: run failed")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"os"

	"github.com/cristianoliveira/courtside/cmd"
	apperrors "github.com/cristianoliveira/courtside/internal/errors"
)

func main() {
	deps := buildCLIDeps()
	registerCommands(cmd.RootCmd, deps)
	os.Exit(run(cmd.Execute, deps, apperrors.NewDefaultCLIHandler()))
}

// run executes the CLI, releases shared resources and returns the exit code.
func run(execute func() error, deps *cliDeps, handler *apperrors.CLIHandler) int {
	if err := execute(); err != nil {
		handler.Error(err.Error())
	}
	if err := deps.Close(); err != nil {
		handler.Warning(fmt.Sprintf("closing resources: %v", err))
	}
	if handler.Failures() > 0 {
		return 1
	}
	return 0
}

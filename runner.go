package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/tliron/commonlog"
)

var runnerLog = commonlog.GetLogger("identic.runner")

// Runner compiles and runs a serialized program in an external terminal.
// It does not wait for the terminal and never learns whether the build
// succeeded.
type Runner struct {
	config RunConfig
	start  func(cmd *exec.Cmd) error
}

func NewRunner(config RunConfig) *Runner {
	return &Runner{config: config, start: startDetached}
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// Script returns the shell script that builds and executes the program.
func (r *Runner) Script() string {
	build := strings.NewReplacer(
		"{source}", r.config.SourcePath,
		"{executable}", r.config.ExecutablePath,
	).Replace(r.config.BuildCommand)
	return fmt.Sprintf("%s && %s; echo; echo 'press enter to continue...'; read placeholder\n",
		build, r.config.ExecutablePath)
}

// Command returns the terminal invocation that runs the script.
func (r *Runner) Command() (*exec.Cmd, error) {
	fields := strings.Fields(r.config.Terminal)
	if len(fields) == 0 {
		return nil, errors.New("no terminal configured")
	}
	args := append(fields[1:], "sh", r.config.ScriptPath)
	return exec.Command(fields[0], args...), nil
}

// Run writes source and the run script to their fixed paths and launches
// the terminal.
func (r *Runner) Run(source string) error {
	if err := os.WriteFile(r.config.SourcePath, []byte(source), 0644); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}
	if err := os.WriteFile(r.config.ScriptPath, []byte(r.Script()), 0644); err != nil {
		return fmt.Errorf("writing run script: %w", err)
	}

	cmd, err := r.Command()
	if err != nil {
		return err
	}
	if err := r.start(cmd); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}
	runnerLog.Infof("launched %s", strings.Join(cmd.Args, " "))
	return nil
}

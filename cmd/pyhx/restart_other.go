//go:build !unix

package main

import (
	"fmt"
	"os"
	"os/exec"
)

// restart starts a new copy of the binary on the same console and lets the
// current process exit.
func restart() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("restart: %w", err)
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("restart: start %s: %w", exe, err)
	}
	return cmd.Process.Release()
}

//go:build unix

package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// redirectStdIO points the stdout and stderr file descriptors at path, so
// runtime panics from any goroutine land in the file as well.
func redirectStdIO(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "--- handheld pid %d started %s\n", os.Getpid(), time.Now().Format(time.RFC3339))
	for _, std := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(int(f.Fd()), int(std.Fd())); err != nil {
			return fmt.Errorf("dup2 onto fd %d: %w", std.Fd(), err)
		}
	}
	return nil
}

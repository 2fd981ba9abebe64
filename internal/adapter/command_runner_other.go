//go:build !unix

package adapter

import "os/exec"

// killProcessGroupOnCancel keeps the default cancellation, which kills the
// shell only. WaitDelay still bounds Run.
func killProcessGroupOnCancel(_ *exec.Cmd) {}

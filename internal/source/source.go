package source

import (
	"fmt"
	"os/exec"
	"strings"
)

// Source produces the current routing table as raw text lines. Fetch blocks
// until the table is available; cancellation of an in-flight fetch is not
// supported, the monitor only honors shutdown between cycles.
type Source interface {
	Fetch() ([]string, error)
}

// IPRoute reads the kernel routing table by running the `ip route` command.
type IPRoute struct {
	command string
	args    []string
}

// NewIPRoute returns a Source backed by the system `ip route` utility.
func NewIPRoute() *IPRoute {
	return &IPRoute{command: "ip", args: []string{"route"}}
}

// Fetch runs `ip route` and returns its output split into lines. A failed
// invocation or non-zero exit status returns an error with no lines.
func (s *IPRoute) Fetch() ([]string, error) {
	output, err := exec.Command(s.command, s.args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run %s %s: %w", s.command, strings.Join(s.args, " "), err)
	}

	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

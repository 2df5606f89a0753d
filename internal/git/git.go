package git

import (
	"os/exec"
	"strings"
)

// Client reads settings from the user's git configuration.
type Client struct {
	binary string
}

// NewClient creates a git client that runs the git binary on PATH.
func NewClient() *Client {
	return &Client{binary: "git"}
}

// UserName returns the configured git user.name, or "" when git is missing
// or the setting is unset.
func (c *Client) UserName() string {
	out, err := exec.Command(c.binary, "config", "--get", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

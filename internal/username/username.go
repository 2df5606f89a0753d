// Package username picks a default login name for htpasswd entries.
package username

import (
	"os"
	"strings"

	"github.com/tools4freee/t4f/internal/git"
	"github.com/tools4freee/t4f/internal/util"
)

// EnvVar overrides every other source.
const EnvVar = "T4F_USER"

// Default returns a login name using fallback chain:
// 1. $T4F_USER
// 2. git config user.name, slugged ("Ada Lovelace" -> "ada.lovelace")
// 3. $USER
// Returns "" when nothing is available.
func Default(gitClient *git.Client) string {
	if user := strings.TrimSpace(os.Getenv(EnvVar)); user != "" {
		return user
	}
	if gitClient != nil {
		if name := loginFromName(gitClient.UserName()); name != "" {
			return name
		}
	}
	return strings.TrimSpace(os.Getenv("USER"))
}

// htpasswd forbids ':' in names; git names usually contain spaces.
func loginFromName(name string) string {
	return util.LocalPart(strings.Fields(name)...)
}

// Package platform isolates the few OS-specific lookups the training entry
// point needs. Optimization and grading code never imports it.
package platform

import (
	"os"
	"os/user"
	"strconv"
)

// Identity describes the operator running a training job, recorded in run
// reports.
type Identity struct {
	Username string
	UID      int
	GID      int
	HomeDir  string
}

// CurrentIdentity resolves the calling user. On systems without a user
// database it falls back to environment variables, so it never fails.
func CurrentIdentity() Identity {
	if u, err := user.Current(); err == nil {
		uid, _ := strconv.Atoi(u.Uid)
		gid, _ := strconv.Atoi(u.Gid)
		return Identity{
			Username: u.Username,
			UID:      uid,
			GID:      gid,
			HomeDir:  u.HomeDir,
		}
	}

	name := os.Getenv("USER")
	if name == "" {
		name = os.Getenv("USERNAME")
	}
	if name == "" {
		name = "user"
	}
	home, _ := os.UserHomeDir()
	return Identity{Username: name, UID: os.Getuid(), GID: os.Getgid(), HomeDir: home}
}

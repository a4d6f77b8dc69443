package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePass_Success(t *testing.T) {
	env := run(t, "changepass", "root", "n3w", "n3w")
	assert.Contains(t, env.out.String(), "Changing password for root.")
	assert.Contains(t, env.out.String(), "Password changed successfully.")

	again := newTestEnvWithConfig(t, env.cfg, env.work, "1", "n3w", "shutdown")
	require.NoError(t, again.app.Run(context.Background()))

	old := newTestEnvWithConfig(t, env.cfg, env.work, "1", "root")
	assert.Error(t, old.app.Run(context.Background()))
}

func TestChangePass_FailuresDoNotMutate(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"wrong current", []string{"changepass", "bad"}, "Error: authentication failed"},
		{"mismatch", []string{"changepass", "root", "a", "b"}, "Error: passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := run(t, tt.input...)
			assert.Contains(t, env.out.String(), tt.want)

			again := newTestEnvWithConfig(t, env.cfg, env.work, "1", "root", "shutdown")
			assert.NoError(t, again.app.Run(context.Background()))
		})
	}
}

func TestSwitchUser_FailureKeepsSession(t *testing.T) {
	env := run(t, "switchuser", "1", "wrong", "whoami")

	out := env.out.String()
	assert.Contains(t, out, "Switching user...")
	assert.Contains(t, out, "Switch user failed. Returning to current session.")
	assert.Equal(t, "root", env.app.session.Identity.Username)
}

func TestSwitchUser_NoBannerWhenSwitching(t *testing.T) {
	env := run(t, "switchuser", "1", "root")

	out := env.out.String()
	assert.Equal(t, 1, countOf(out, "--- Welcome to PyHx OS ---"))
	assert.Equal(t, 1, countOf(out, "Login successful"))
}

func TestUser_AddAndDelete(t *testing.T) {
	env := run(t,
		"user add -a alice pw",
		"user add -u alice pw",
		"user delete alice", "alic",
		"user delete alice", "alice",
		"user delete alice",
	)

	out := env.out.String()
	assert.Contains(t, out, "Successfully added user 'alice' with role 'admin'.")
	assert.Contains(t, out, "Error: user 'alice' already exists")
	assert.Contains(t, out, "To confirm deletion of 'alice', please type the username again: ")
	assert.Contains(t, out, "Confirmation failed.")
	assert.Contains(t, out, "Successfully deleted user 'alice'.")
	assert.Contains(t, out, "Error: user 'alice' not found")
}

func TestUser_ProtectedDeletes(t *testing.T) {
	env := run(t,
		"user add -a admin2 pw",
		"user delete root",
		"switchuser", "2", "pw",
		"user delete admin2",
	)

	out := env.out.String()
	assert.Contains(t, out, "Error: the 'root' user cannot be deleted")
	assert.Contains(t, out, "Error: you cannot delete yourself")
	assert.NotContains(t, out, "To confirm deletion")
}

func TestUser_Usage(t *testing.T) {
	env := run(t, "user", "user add -x bob pw", "user delete", "user rename a b")

	out := env.out.String()
	assert.Equal(t, 2, countOf(out, "Usage: user <add|delete> ..."))
	assert.Contains(t, out, "Usage: user add <-u|-a> <username> <password>")
	assert.Contains(t, out, "Usage: user delete <username>")
}

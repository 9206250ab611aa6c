package terminal

import (
	"os"
	"testing"
)

// setupCleanEnv controls every environment variable the package reads and
// sets only the given ones.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	// NO_COLOR is checked for existence: Setenv registers the restore, Unsetenv clears it
	t.Setenv("NO_COLOR", "")
	if value, ok := envVars["NO_COLOR"]; ok {
		t.Setenv("NO_COLOR", value)
	} else if err := os.Unsetenv("NO_COLOR"); err != nil {
		t.Fatalf("failed to unset NO_COLOR: %v", err)
	}

	valueCheckedVars := append([]string{"CLICOLOR", "CLICOLOR_FORCE", "TERM"}, ciEnvVars...)
	for _, v := range valueCheckedVars {
		t.Setenv(v, envVars[v])
	}
}

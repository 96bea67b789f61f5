package app

import (
	"os"
	"testing"

	"github.com/vk/backupctl/internal/config"
	"github.com/vk/backupctl/internal/testutil"
)

// SetupAppTest creates a new app instance for system testing with debug
// logging captured in the returned buffer.
func SetupAppTest(t *testing.T, appConfig *Config, loader config.Loader, opts ...Option) (*App, *testutil.SafeBuffer, error) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	appConfig.LogLevel = "debug"
	testApp, err := NewApp(logBuffer, appConfig, loader, opts...)

	t.Cleanup(func() {
		if os.Getenv("BACKUPCTL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer, err
}

package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// ciEnvironmentVars are probed to detect a CI environment, where colored
// output tends to end up in build logs.
var ciEnvironmentVars = []string{
	"CI",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"BUILDKITE",
	"DRONE",
	"JENKINS_URL",
	"TEAMCITY_VERSION",
}

// isRunningInCI checks if we're running in a CI/CD environment.
func isRunningInCI() bool {
	for _, v := range ciEnvironmentVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// shouldUseColor determines if styled output is appropriate for stdout.
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	if isRunningInCI() {
		return false
	}
	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}
	return true
}

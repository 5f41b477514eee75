// Package labels holds the constant labels every metric and log line of the
// process carries.
package labels

import "os"

// Build info provided by linker at build time, e.g.
// -ldflags "-X github.com/tufitko/minmaxheap/pkg/labels.GitCommit=abc123".
var (
	GitBranch   string
	GitCommit   string
	BuildNumber string
	BuildDate   string
)

var Labels map[string]string

func init() {
	build := []struct {
		label    string
		value    *string
		env      string
		fallback string
	}{
		{"git_branch", &GitBranch, "GIT_BRANCH", "unknown"},
		{"git_commit", &GitCommit, "GIT_COMMIT", "unknown"},
		{"build_number", &BuildNumber, "BUILD_NUMBER", "1"},
		{"build_date", &BuildDate, "BUILD_DATE", "unknown"},
	}

	Labels = make(map[string]string, len(build))
	for _, b := range build {
		if *b.value == "" {
			*b.value = os.Getenv(b.env)
		}
		if *b.value == "" {
			*b.value = b.fallback
		}
		Labels[b.label] = *b.value
	}
}

// Add merges labels in. Call it before any metric is created.
func Add(labels map[string]string) {
	for k, v := range labels {
		Labels[k] = v
	}
}

// GetLoggerLabels returns Labels in the shape logging fields expect.
func GetLoggerLabels() map[string]interface{} {
	converted := make(map[string]interface{}, len(Labels))
	for k, v := range Labels {
		converted[k] = v
	}
	return converted
}

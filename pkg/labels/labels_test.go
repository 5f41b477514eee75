package labels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tufitko/minmaxheap/pkg/labels"
)

func TestLabels(t *testing.T) {
	for _, name := range []string{"git_branch", "git_commit", "build_number", "build_date"} {
		assert.NotEmpty(t, labels.Labels[name], name)
	}
	assert.Equal(t, labels.GitCommit, labels.Labels["git_commit"])
}

func TestAdd(t *testing.T) {
	labels.Add(map[string]string{"app": "minmaxheap"})
	assert.Equal(t, "minmaxheap", labels.Labels["app"])

	logged := labels.GetLoggerLabels()
	assert.Len(t, logged, len(labels.Labels))
	assert.Equal(t, "minmaxheap", logged["app"])
}

package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tufitko/minmaxheap/pkg/render"
)

func TestArray(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, render.Array(buf, []int{9, 1, -3}))
	assert.Equal(t, "[9, 1, -3]\n", buf.String())

	buf.Reset()
	require.NoError(t, render.Array(buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestLayers(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   string
	}{
		{name: "empty", values: nil, want: ""},
		{name: "root only", values: []int{4}, want: "Max: 4\n"},
		{
			name:   "three levels",
			values: []int{9, 1, 3, 2, 5, 8},
			want: "Max:     9\n" +
				"Min:   1  3\n" +
				"Max: 2  5  8\n",
		},
		{
			name:   "full then one more",
			values: []int{20, 1, 2, 10, 11, 12, 13, 3},
			want: "Max:       20\n" +
				"Min:     1  2\n" +
				"Max:   10  11  12  13\n" +
				"Min: 3\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, render.Layers(buf, c.values))
			assert.Equal(t, c.want, buf.String())
		})
	}
}

func TestHeap(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, render.Heap(buf, []int{3, 1}))
	assert.Equal(t, "Array representation:\n[3, 1]\nTree layers representation:\nMax:   3\nMin: 1\n", buf.String())
}

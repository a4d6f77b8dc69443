package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Line
	}{
		{
			name: "append redirect",
			in:   "say hello world >> notes.txt",
			want: Line{Command: "say", Args: []string{"hello", "world"}, Redirect: &Redirect{Target: "notes.txt", Append: true}},
		},
		{
			name: "no redirect",
			in:   "say hello world",
			want: Line{Command: "say", Args: []string{"hello", "world"}},
		},
		{
			name: "overwrite redirect",
			in:   "say hi > out.txt",
			want: Line{Command: "say", Args: []string{"hi"}, Redirect: &Redirect{Target: "out.txt"}},
		},
		{
			name: "command lowercased, args kept",
			in:   "  LOOK   MyDir ",
			want: Line{Command: "look", Args: []string{"MyDir"}},
		},
		{
			name: "append wins over overwrite",
			in:   "say a > b >> c",
			want: Line{Command: "say", Args: []string{"a", ">", "b"}, Redirect: &Redirect{Target: "c", Append: true}},
		},
		{
			name: "split at first marker only",
			in:   "say x > a > b",
			want: Line{Command: "say", Args: []string{"x"}, Redirect: &Redirect{Target: "a > b"}},
		},
		{
			name: "empty target kept",
			in:   "say x >",
			want: Line{Command: "say", Args: []string{"x"}, Redirect: &Redirect{Target: ""}},
		},
		{
			name: "blank line",
			in:   "   ",
			want: Line{},
		},
		{
			name: "only redirect",
			in:   "> file",
			want: Line{Redirect: &Redirect{Target: "file"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			assert.Equal(t, tt.want.Command, got.Command)
			assert.Equal(t, len(tt.want.Args), len(got.Args))
			for i := range tt.want.Args {
				assert.Equal(t, tt.want.Args[i], got.Args[i])
			}
			assert.Equal(t, tt.want.Redirect, got.Redirect)
		})
	}
}

func TestLine_Empty(t *testing.T) {
	assert.True(t, Parse("").Empty())
	assert.False(t, Parse("help").Empty())
}

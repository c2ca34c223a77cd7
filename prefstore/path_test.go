package prefstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		want     []string
		wantOK   bool
	}{
		{name: "single segment", path: "abra", want: []string{"abra"}, wantOK: true},
		{name: "nested", path: "abra.cadabra.alakazam", want: []string{"abra", "cadabra", "alakazam"}, wantOK: true},
		{name: "segment with spaces", path: "a b.c d", want: []string{"a b", "c d"}, wantOK: true},
		{name: "empty", path: "", wantOK: false},
		{name: "single dot", path: ".", wantOK: false},
		{name: "only dots", path: ".......", wantOK: false},
		{name: "leading dot", path: ".abra", wantOK: false},
		{name: "many leading dots", path: "....abra", wantOK: false},
		{name: "trailing dot", path: "abra.", wantOK: false},
		{name: "many trailing dots", path: "abra....", wantOK: false},
		{name: "consecutive dots", path: "abra..cadabra", wantOK: false},
		{name: "inner empty segment", path: "a..b.c", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := splitPath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

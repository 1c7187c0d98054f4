//go:build test_unit

package go_machinetalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	for in, want := range map[string]string{
		"":          "",
		"demo":      "Demo",
		"halrcomp":  "Halrcomp",
		"CONFIG":    "Config",
		"my_comp":   "My_Comp",
		"comp2x":    "Comp2X",
		"two words": "Two Words",
	} {
		assert.Equal(t, want, TitleCase(in), "input %q", in)
	}
}

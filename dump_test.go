package arbor

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpContainsEveryValue(t *testing.T) {
	tr := sampleTree(t)
	s := tr.Dump(strconv.Itoa)
	for _, want := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		assert.True(t, strings.Contains(s, want), "dump missing value %s:\n%s", want, s)
	}
}

func TestStringUsesDump(t *testing.T) {
	tr := sampleTree(t)
	assert.Equal(t, tr.Dump(strconv.Itoa), tr.String())
}

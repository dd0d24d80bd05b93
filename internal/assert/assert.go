package assert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// EqualToFixture compares actual with testdata/<name>. If GEN_FIXTURE=true is
// set, it writes actual to the fixture file instead and passes.
func (a *Assert) EqualToFixture(name string, actual string) {
	a.T.Helper()

	fixturePath := filepath.Join("testdata", name)

	if os.Getenv("GEN_FIXTURE") == "true" {
		err := os.MkdirAll(filepath.Dir(fixturePath), 0755)
		a.NoError(err, "Failed to create fixture directory")
		err = os.WriteFile(fixturePath, []byte(actual), 0644)
		a.NoError(err, "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(fixturePath)
	if !a.NoError(err, "Failed to read fixture file") {
		return
	}
	a.Equal(string(expected), actual, "Result does not match fixture %s", fixturePath)
}

// EqualLines compares text line by line after trimming the surrounding blank
// lines of expected, so fixtures can be written as indented raw strings.
func (a *Assert) EqualLines(expected string, actual string) {
	a.T.Helper()
	want := strings.Split(strings.Trim(expected, "\n"), "\n")
	got := strings.Split(strings.TrimRight(actual, "\n"), "\n")
	a.Equal(want, got)
}

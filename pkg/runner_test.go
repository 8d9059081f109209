package lambda

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const program = `# factorial and friends
defun fact(n) {
  if (n == 0) { return 1 } else { return n * fact(n - 1) }
}
x = 5
fact(x)
x > 3 && true
lambda (a, b): (a - b) (10, 4)
`

func TestRunnerRunSource(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)

	require.NoError(t, r.RunSource(program))
	assert.Equal(t, "120\ntrue\n6\n", out.String())
}

func TestRunnerRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.lambda")
	require.NoError(t, os.WriteFile(path, []byte(program), 0o644))

	var out bytes.Buffer
	require.NoError(t, NewRunner(&out).Run(path))
	assert.Equal(t, "120\ntrue\n6\n", out.String())
}

func TestRunnerRunFromReader(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRunner(&out).RunFromReader(strings.NewReader("1 + 1")))
	assert.Equal(t, "2\n", out.String())
}

func TestRunnerMissingFile(t *testing.T) {
	err := NewRunner(&bytes.Buffer{}).Run(filepath.Join(t.TempDir(), "missing.lambda"))

	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestRunnerPrintsBeforeError(t *testing.T) {
	var out bytes.Buffer

	err := NewRunner(&out).RunSource("1\nundefined\n2")

	var nameErr *NameError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "undefined", nameErr.Name)
	assert.Equal(t, "1\n", out.String())
}

func TestRunnerKeepsState(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out)

	require.NoError(t, r.RunSource("defun twice(n) { return n * 2 }"))
	require.NoError(t, r.RunSource("twice(21)"))
	assert.Equal(t, "42\n", out.String())
	assert.Contains(t, r.Interpreter().Environment().Functions, "twice")
}

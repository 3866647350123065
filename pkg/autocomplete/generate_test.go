package autocomplete

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCobraGenerator_Markers(t *testing.T) {
	tests := []struct {
		shell  Shell
		marker string
	}{
		{Bash, "bash completion"},
		{Zsh, "compdef"},
		{Fish, "complete -c"},
		{PowerShell, "Register-ArgumentCompleter"},
		{Elvish, "edit:completion:arg-completer"},
	}

	for _, tt := range tests {
		t.Run(tt.shell.String(), func(t *testing.T) {
			buf := new(bytes.Buffer)
			err := CobraGenerator{}.Generate(buf, tt.shell, createTestRootCmd(), "mytool")
			require.NoError(t, err)

			output := buf.String()
			assert.NotEmpty(t, output)
			assert.Contains(t, output, tt.marker)
			assert.Contains(t, output, "mytool")
		})
	}
}

func TestCobraGenerator_Deterministic(t *testing.T) {
	for _, shell := range []Shell{Bash, Zsh, Fish, PowerShell} {
		t.Run(shell.String(), func(t *testing.T) {
			root := createTestRootCmd()

			first := new(bytes.Buffer)
			second := new(bytes.Buffer)
			require.NoError(t, CobraGenerator{}.Generate(first, shell, root, "mytool"))
			require.NoError(t, CobraGenerator{}.Generate(second, shell, root, "mytool"))

			assert.Equal(t, first.Bytes(), second.Bytes())
		})
	}
}

func TestCobraGenerator_UsesProgramName(t *testing.T) {
	root := createTestRootCmd()
	root.Use = "mytool [flags]"

	buf := new(bytes.Buffer)
	require.NoError(t, CobraGenerator{}.Generate(buf, Fish, root, "othertool"))

	assert.Contains(t, buf.String(), "complete -c othertool")
	assert.Equal(t, "mytool [flags]", root.Use)
	assert.Equal(t, "mytool", root.Name())
}

func TestCobraGenerator_NoDescriptions(t *testing.T) {
	root := createTestRootCmd()

	withDesc := new(bytes.Buffer)
	noDesc := new(bytes.Buffer)
	require.NoError(t, CobraGenerator{}.Generate(withDesc, Zsh, root, "mytool"))
	require.NoError(t, CobraGenerator{NoDescriptions: true}.Generate(noDesc, Zsh, root, "mytool"))

	assert.NotEqual(t, withDesc.String(), noDesc.String())
}

func TestCobraGenerator_UnknownShell(t *testing.T) {
	err := CobraGenerator{}.Generate(new(bytes.Buffer), Shell(0), createTestRootCmd(), "mytool")
	assert.ErrorIs(t, err, ErrUnsupportedShell)
}

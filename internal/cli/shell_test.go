package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellCommand(t *testing.T) {
	input := strings.Join([]string{
		"CREATE DIRECTORY archive",
		"OPEN DIRECTORY archive",
		"",
		"STATUS",
		"EXIT",
		"CREATE TOPIC never",
	}, "\n")

	out, _, err := executeWithInput(t, input, "shell", "--home", tempHome(t))
	require.NoError(t, err)

	assert.Contains(t, out, "topicdb:/> Directory archive created.\n")
	assert.Contains(t, out, "topicdb:/archive> Invalid: nothing to parse\n")
	assert.Contains(t, out, "context: /archive\n")
	assert.Contains(t, out, "topicdb:/archive> Bye\n")
	assert.NotContains(t, out, "never")
}

func TestShellCommand_EOF(t *testing.T) {
	out, _, err := executeWithInput(t, "CLOSE\n", "shell", "--home", tempHome(t))
	require.NoError(t, err)
	assert.Equal(t, "topicdb:/> Closed\ntopicdb:/> \n", out)
}

func TestShellCommand_JSON(t *testing.T) {
	out, _, err := executeWithInput(t, "CREATE TOPIC a\nOPEN TOPIC a\n", "shell", "--home", tempHome(t), "--format", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var view ResponseView
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &view))
	assert.Equal(t, ResponseView{Command: "OPEN TOPIC a", Status: "open", Message: "Opened a", Prompt: "/a"}, view)
}

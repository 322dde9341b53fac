package assistantcmd

import (
	"testing"

	"PixBot/assistant"
	"PixBot/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTable(t *testing.T) {
	for _, name := range []string{"persona", "persona_reset", "forget"} {
		cmd, ok := commands.GetSlashCommand(name)
		require.True(t, ok, name)
		assert.True(t, cmd.Ephemeral, name)
	}

	persona, _ := commands.GetSlashCommand("persona")
	assert.Equal(t, assistant.MaxPersonaLength, persona.Options[0].MaxLength)

	ask, ok := commands.GetSlashCommand("ask")
	require.True(t, ok)
	assert.False(t, ask.Ephemeral)
}

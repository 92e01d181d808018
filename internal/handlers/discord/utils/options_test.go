package utils_test

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dnd-dpr/internal/handlers/discord/utils"
)

func TestOptions(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{{
		Name: "compare",
		Type: discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "preset", Type: discordgo.ApplicationCommandOptionString, Value: "TWF Rogue"},
			{Name: "band", Type: discordgo.ApplicationCommandOptionString, Value: "boss"},
		},
	}}

	assert.Equal(t, "compare", utils.Subcommand(options))
	assert.Equal(t, "TWF Rogue", utils.StringOption(options, "preset"))
	assert.Equal(t, "boss", utils.StringOption(options, "band"))
	assert.Empty(t, utils.StringOption(options, "against"))
	assert.Nil(t, utils.FindOption(nil, "preset"))
	assert.Empty(t, utils.Subcommand(nil))
}

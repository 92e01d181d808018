package dpr

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
)

type DescribeRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Archetype   string
}

type DescribeHandler struct{}

func NewDescribeHandler() *DescribeHandler {
	return &DescribeHandler{}
}

func (h *DescribeHandler) Handle(req *DescribeRequest) error {
	return respond(req.Session, req.Interaction, h.Response(req.Archetype))
}

// Response explains an archetype's variants and configuration keys
func (h *DescribeHandler) Response(archetype string) *discordgo.InteractionResponseData {
	a, err := builds.ParseArchetype(archetype)
	if err != nil {
		return errorResponse(err)
	}
	b, err := builds.Default(a, accuracy.DefaultEnv())
	if err != nil {
		return errorResponse(err)
	}

	embed := &discordgo.MessageEmbed{
		Title: "📖 " + b.Name(),
		Color: colorInfo,
	}

	var variants []string
	for _, v := range b.ValidTypes() {
		variants = append(variants, fmt.Sprintf("`%s` %s", v, b.Describe(string(v))))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  "Variants",
		Value: strings.Join(variants, "\n"),
	})

	fields := b.ConfigurableFields()
	for _, group := range []struct {
		name string
		keys []string
	}{
		{"Common", fields.Common},
		{"Toggles", fields.Toggles},
		{"Dials", fields.Dials},
	} {
		if len(group.keys) == 0 {
			continue
		}
		lines := make([]string, len(group.keys))
		for i, key := range group.keys {
			lines[i] = fmt.Sprintf("`%s` %s", key, b.Describe(key))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  group.name,
			Value: strings.Join(lines, "\n"),
		})
	}
	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}

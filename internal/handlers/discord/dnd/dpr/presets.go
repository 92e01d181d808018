package dpr

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
)

type PresetsRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Archetype   string // Optional filter
}

type PresetsHandler struct{}

func NewPresetsHandler() *PresetsHandler {
	return &PresetsHandler{}
}

func (h *PresetsHandler) Handle(req *PresetsRequest) error {
	return respond(req.Session, req.Interaction, h.Response(req.Archetype))
}

// Response lists preset names, one field per archetype
func (h *PresetsHandler) Response(archetype string) *discordgo.InteractionResponseData {
	var filter builds.Archetype
	if archetype != "" {
		a, err := builds.ParseArchetype(archetype)
		if err != nil {
			return errorResponse(err)
		}
		filter = a
	}

	all, err := builds.AllPresets(accuracy.DefaultEnv())
	if err != nil {
		return errorResponse(err)
	}

	grouped := make(map[builds.Archetype][]string)
	for _, p := range all {
		grouped[p.Build.Archetype()] = append(grouped[p.Build.Archetype()], "`"+p.Name+"`")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📋 DPR Presets",
		Description: "Use a name with `/dpr compare preset:<name>`",
		Color:       colorInfo,
	}
	for _, a := range builds.Archetypes() {
		names := grouped[a]
		if len(names) == 0 || (filter != "" && a != filter) {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", strings.ToUpper(string(a[:1]))+string(a[1:]), len(names)),
			Value: strings.Join(names, "\n"),
		})
	}
	if len(embed.Fields) == 0 {
		embed.Description = "No presets for " + archetype
	}
	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}

package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	"github.com/KirkDiggler/dnd-dpr/internal/handlers/discord/dnd/dpr"
	"github.com/KirkDiggler/dnd-dpr/internal/handlers/discord/utils"
	"github.com/KirkDiggler/dnd-dpr/internal/services"
)

const commandName = "dpr"

// Handler handles all Discord interactions
type Handler struct {
	ServiceProvider *services.Provider

	compareHandler  *dpr.CompareHandler
	presetsHandler  *dpr.PresetsHandler
	describeHandler *dpr.DescribeHandler
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	return &Handler{
		ServiceProvider: cfg.ServiceProvider,
		compareHandler: dpr.NewCompareHandler(&dpr.CompareHandlerConfig{
			Service: cfg.ServiceProvider.DPRService,
		}),
		presetsHandler:  dpr.NewPresetsHandler(),
		describeHandler: dpr.NewDescribeHandler(),
	}
}

func bandChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(difficulty.Bands()))
	for _, b := range difficulty.Bands() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(b), Value: string(b)})
	}
	return choices
}

func archetypeChoices() []*discordgo.ApplicationCommandOptionChoice {
	archetypes := builds.Archetypes()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(archetypes))
	for _, a := range archetypes {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(a), Value: string(a)})
	}
	return choices
}

// Commands returns the slash commands the bot serves
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandName,
			Description: "Compare damage per round against the baseline rogue",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "compare",
					Description: "Compare a preset, optionally against another",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "preset",
							Description: "Preset name, see /dpr presets",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "against",
							Description: "Second preset name",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "band",
							Description: "Monster difficulty band",
							Choices:     bandChoices(),
						},
					},
				},
				{
					Name:        "presets",
					Description: "List preset names",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "archetype",
							Description: "Only list one archetype",
							Choices:     archetypeChoices(),
						},
					},
				},
				{
					Name:        "describe",
					Description: "Explain an archetype's variants and settings",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "archetype",
							Description: "Archetype",
							Required:    true,
							Choices:     archetypeChoices(),
						},
					},
				},
			},
		},
	}
}

// RegisterCommands registers the slash commands, globally when guildID is empty
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	for _, cmd := range h.Commands() {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to create command %s: %w", cmd.Name, err)
		}
		log.Printf("Registered command: %s", cmd.Name)
	}
	return nil
}

// HandleInteraction handles all Discord interactions
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != commandName {
		return
	}

	var err error
	switch sub := utils.Subcommand(data.Options); sub {
	case "compare":
		err = h.compareHandler.Handle(&dpr.CompareRequest{
			Session:     s,
			Interaction: i,
			Preset:      utils.StringOption(data.Options, "preset"),
			Against:     utils.StringOption(data.Options, "against"),
			Band:        utils.StringOption(data.Options, "band"),
		})
	case "presets":
		err = h.presetsHandler.Handle(&dpr.PresetsRequest{
			Session:     s,
			Interaction: i,
			Archetype:   utils.StringOption(data.Options, "archetype"),
		})
	case "describe":
		err = h.describeHandler.Handle(&dpr.DescribeRequest{
			Session:     s,
			Interaction: i,
			Archetype:   utils.StringOption(data.Options, "archetype"),
		})
	default:
		log.Printf("Unknown /%s subcommand %q", commandName, sub)
		return
	}
	if err != nil {
		log.Printf("Error handling /%s command: %v", commandName, err)
	}
}

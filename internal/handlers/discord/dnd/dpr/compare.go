package dpr

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dnd-dpr/internal/accuracy"
	"github.com/KirkDiggler/dnd-dpr/internal/builds"
	"github.com/KirkDiggler/dnd-dpr/internal/calculator"
	"github.com/KirkDiggler/dnd-dpr/internal/difficulty"
	dprService "github.com/KirkDiggler/dnd-dpr/internal/services/dpr"
)

type CompareRequest struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Preset      string
	Against     string // Optional second preset
	Band        string // Optional, the service default when empty
}

type CompareHandler struct {
	service dprService.Service
}

type CompareHandlerConfig struct {
	Service dprService.Service
}

func NewCompareHandler(cfg *CompareHandlerConfig) *CompareHandler {
	return &CompareHandler{service: cfg.Service}
}

func (h *CompareHandler) Handle(req *CompareRequest) error {
	data := h.Response(context.Background(), req.Preset, req.Against, req.Band)
	return respond(req.Session, req.Interaction, data)
}

// Response computes the comparison and renders it, or the error
func (h *CompareHandler) Response(ctx context.Context, preset, against, band string) *discordgo.InteractionResponseData {
	input := &dprService.CompareInput{}
	if band != "" {
		parsed, err := difficulty.ParseBand(band)
		if err != nil {
			return errorResponse(err)
		}
		input.Band = parsed
	}

	title := preset
	for _, name := range []string{preset, against} {
		if name == "" {
			continue
		}
		p, err := builds.FindPreset(accuracy.DefaultEnv(), name)
		if err != nil {
			return errorResponse(err)
		}
		input.Inputs = append(input.Inputs, calculator.Calculable{
			ID:      p.Name,
			Label:   p.Name,
			Build:   p.Build,
			Variant: p.Variant,
		})
	}
	if against != "" {
		title += " vs " + against
	}

	report, err := h.service.Compare(ctx, input)
	if report == nil {
		return errorResponse(err)
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{ReportEmbed(title, report)},
	}
	if err != nil {
		data.Content = "⚠️ Some levels could not be computed"
	}
	return data
}

// Package dpr answers the /dpr slash command
package dpr

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/dnd-dpr/internal/repositories/reports"
)

// summaryLevels are the levels shown in a Discord table
var summaryLevels = []int{1, 5, 11, 17, 20}

const (
	colorReport = 0x3498db // Blue
	colorError  = 0xe74c3c // Red
	colorInfo   = 0x2ecc71 // Green
)

// respond sends data as an ephemeral reply
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	data.Flags = discordgo.MessageFlagsEphemeral
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func errorResponse(err error) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("❌ %v", err),
	}
}

// ReportEmbed renders one series per field as a RED/raw table
func ReportEmbed(title string, report *reports.Report) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("Band: **%s**. RED is damage relative to the baseline rogue.", report.Band),
		Color:       colorReport,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Report " + report.ID,
		},
	}

	for _, s := range report.Series {
		var b strings.Builder
		b.WriteString("```\nLvl   RED    Raw\n")
		for _, level := range summaryLevels {
			i := level - 1
			fmt.Fprintf(&b, "%3d %5s %6s\n", level, formatValue(at(s.Red, i)), formatValue(at(s.Raw, i)))
		}
		b.WriteString("```")
		if len(s.Failures) > 0 {
			fmt.Fprintf(&b, "⚠️ %d level(s) failed: %s", len(s.Failures), s.Failures[0].Message)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   s.Label,
			Value:  b.String(),
			Inline: true,
		})
	}
	return embed
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

package utils

import "github.com/bwmarrin/discordgo"

type option = *discordgo.ApplicationCommandInteractionDataOption

// FindOption searches options and the nested options of subcommand groups and
// subcommands for name
func FindOption(options []option, name string) option {
	for len(options) > 0 {
		for _, opt := range options {
			if opt.Name == name {
				return opt
			}
		}
		options = options[0].Options
	}
	return nil
}

// StringOption returns a string option's value, or "" when it was not given
func StringOption(options []option, name string) string {
	opt := FindOption(options, name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

// Subcommand returns the name of the first subcommand in options
func Subcommand(options []option) string {
	for _, opt := range options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			return opt.Name
		}
	}
	return ""
}

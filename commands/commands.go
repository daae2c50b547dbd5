package commands

import "github.com/bwmarrin/discordgo"

// Definitions returns the slash commands the bot registers on startup.
func Definitions() []*discordgo.ApplicationCommand {
	dmPermission := false
	return []*discordgo.ApplicationCommand{
		{
			Name:         "temprole",
			Description:  "Grant a member a role for a limited time",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to grant the role to", Required: true},
				{Type: discordgo.ApplicationCommandOptionRole, Name: "role", Description: "Role to grant", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "duration", Description: "Duration in minutes", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the grant"},
			},
		},
		{
			Name:         "tempban",
			Description:  "Ban a member for a limited time",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Member to ban", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "duration", Description: "Duration in minutes", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason for the ban"},
			},
		},
		{
			Name:         "customcmd",
			Description:  "Manage this guild's custom commands",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "add", Description: "Add or replace a custom command",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Command name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "reply", Description: "Reply text", Required: true},
					},
				},
				{
					Type: discordgo.ApplicationCommandOptionSubCommand, Name: "remove", Description: "Remove a custom command",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Command name", Required: true},
					},
				},
			},
		},
		{
			Name:         "birthday",
			Description:  "Store your birthday for the daily announcement",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "month", Description: "Month (1-12)", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "day", Description: "Day (1-31)", Required: true},
			},
		},
		{
			Name:         "botinfo",
			Description:  "Show bot host statistics",
			DMPermission: &dmPermission,
		},
	}
}

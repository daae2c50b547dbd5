package handlers

import (
	"github.com/bwmarrin/discordgo"

	"sero/bot"
	"sero/commands"
)

// Register installs the command handler map and session event handlers.
func Register(b *bot.Bot) {
	b.CommandDefs = commands.Definitions()
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"temprole": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTempRole(s, i, b)
		},
		"tempban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleTempBan(s, i, b)
		},
		"customcmd": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleCustomCommand(s, i, b)
		},
		"birthday": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBirthday(s, i, b)
		},
		"botinfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBotInfo(s, i)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleMessage(s, m, b)
	})
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

package discord

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/akenes/zhurnal/internal/session"
)

const answerPrefix = "answer:"

const greeting = "Привет! Журнал активности активирован. Ожидай уведомлений в течение дня."

// maxButtonsPerRow is Discord's hard limit on components in an action row.
const maxButtonsPerRow = 5

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore own messages
	if m.Author.ID == s.State.User.ID {
		return
	}
	// Only DMs carry journal replies
	if m.GuildID != "" {
		return
	}

	content := strings.TrimSpace(m.Content)
	if content == "" {
		return
	}

	// Commands never count as survey answers, even mid-survey.
	if isStartCommand(content) {
		if _, err := s.ChannelMessageSend(m.ChannelID, greeting); err != nil {
			log.Printf("greeting %s: %v", m.Author.ID, err)
		}
		return
	}

	b.route(m.Author.ID, content)
}

func isStartCommand(s string) bool {
	return strings.EqualFold(s, "/start") || strings.EqualFold(s, "!start")
}

// onInteraction handles button presses on a choice layout. The button label
// becomes the reply text, same as if the user had typed it.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	answer, ok := answerFromCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	// Acknowledge so the client stops showing "interaction failed".
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("acknowledging interaction: %v", err)
	}

	user := i.User
	if user == nil && i.Member != nil {
		user = i.Member.User
	}
	if user == nil {
		return
	}

	b.route(user.ID, answer)
}

func (b *Bot) route(userID, reply string) {
	outcome, err := b.router.Consume(userID, reply)
	if err != nil {
		log.Printf("consuming reply from %s: %v", userID, err)
		return
	}
	if outcome == session.Ignored {
		log.Printf("ignoring reply from %s: no open session", userID)
	}
}

// buttonRows renders a choice layout as Discord button components. Rows
// wider than Discord's per-row limit are re-wrapped.
func buttonRows(choices [][]string) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for _, row := range choices {
		for len(row) > 0 {
			n := len(row)
			if n > maxButtonsPerRow {
				n = maxButtonsPerRow
			}
			buttons := make([]discordgo.MessageComponent, 0, n)
			for _, opt := range row[:n] {
				buttons = append(buttons, discordgo.Button{
					Label:    opt,
					Style:    discordgo.SecondaryButton,
					CustomID: answerPrefix + opt,
				})
			}
			rows = append(rows, discordgo.ActionsRow{Components: buttons})
			row = row[n:]
		}
	}
	return rows
}

func answerFromCustomID(id string) (string, bool) {
	if !strings.HasPrefix(id, answerPrefix) {
		return "", false
	}
	return strings.TrimPrefix(id, answerPrefix), true
}

func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := maxLen
		if end > len(s) {
			end = len(s)
		}
		// Try to split at a newline; otherwise back off to a rune
		// boundary so a multi-byte character is never cut in half.
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		} else if end < len(s) {
			orig := end
			for end > 0 && !utf8.RuneStart(s[end]) {
				end--
			}
			if end == 0 {
				end = orig // degenerate window, hard split
			}
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}

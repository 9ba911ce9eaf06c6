// Package discord is the message transport: it delivers survey prompts to a
// user's DM channel and routes inbound replies to the session tracker.
package discord

import (
	"fmt"
	"log"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/akenes/zhurnal/internal/session"
)

// Router consumes inbound reply text for a user.
type Router interface {
	Consume(userID, reply string) (session.Outcome, error)
}

type Bot struct {
	session *discordgo.Session
	router  Router

	mu         sync.Mutex
	dmChannels map[string]string // userID -> DM channel ID
}

func NewBot(token string) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	bot := &Bot{session: s, dmChannels: make(map[string]string)}
	s.AddHandler(bot.onMessage)
	s.AddHandler(bot.onInteraction)
	s.Identify.Intents = discordgo.IntentsDirectMessages
	// Gateway events arrive in order on one websocket. Dispatching them
	// synchronously keeps two back-to-back replies from the same user in
	// arrival order; answers pair with questions by position, so a swap
	// would attribute them wrongly.
	s.SyncEvents = true

	return bot, nil
}

// Start routes inbound messages to r and opens the gateway connection.
func (b *Bot) Start(r Router) error {
	b.router = r
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}
	log.Printf("Discord bot connected as %s", b.session.State.User.Username)
	return nil
}

func (b *Bot) Close() {
	b.session.Close()
}

// SendPrompt DMs one message to the user. A non-nil choice layout is rendered
// as rows of buttons under the message; pressing one feeds its label back as
// the reply text. Fire-and-forget: no retries.
func (b *Bot) SendPrompt(userID, text string, choices [][]string) error {
	channelID, err := b.dmChannel(userID)
	if err != nil {
		return err
	}

	if choices == nil {
		// Discord caps messages at 2000 chars; prompts are short, but a
		// digest can run long.
		for _, chunk := range splitMessage(text, 2000) {
			if _, err := b.session.ChannelMessageSend(channelID, chunk); err != nil {
				return fmt.Errorf("sending message to %s: %w", userID, err)
			}
		}
		return nil
	}

	_, err = b.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    text,
		Components: buttonRows(choices),
	})
	if err != nil {
		return fmt.Errorf("sending choice message to %s: %w", userID, err)
	}
	return nil
}

func (b *Bot) dmChannel(userID string) (string, error) {
	b.mu.Lock()
	id, ok := b.dmChannels[userID]
	b.mu.Unlock()
	if ok {
		return id, nil
	}

	ch, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return "", fmt.Errorf("opening DM channel with %s: %w", userID, err)
	}

	b.mu.Lock()
	b.dmChannels[userID] = ch.ID
	b.mu.Unlock()
	return ch.ID, nil
}

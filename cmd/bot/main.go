package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akenes/zhurnal/config"
	"github.com/akenes/zhurnal/internal/db"
	"github.com/akenes/zhurnal/internal/digest"
	"github.com/akenes/zhurnal/internal/discord"
	"github.com/akenes/zhurnal/internal/llm"
	"github.com/akenes/zhurnal/internal/scheduler"
	"github.com/akenes/zhurnal/internal/session"
)

func main() {
	cfg := config.Load()

	if cfg.DiscordToken == "" {
		log.Fatal("DISCORD_BOT_TOKEN is required")
	}
	if len(cfg.UserIDs) == 0 {
		log.Fatal("JOURNAL_USERS is required (comma-separated Discord user IDs)")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	bot, err := discord.NewBot(cfg.DiscordToken)
	if err != nil {
		log.Fatalf("failed to create Discord bot: %v", err)
	}

	tracker := session.New(bot, database, loc)

	// The weekly digest only runs when an LLM provider is configured.
	var dg *digest.Digest
	if cfg.LLMProvider != "" {
		client, err := llm.NewClient(llm.Config{
			Provider:       cfg.LLMProvider,
			AnthropicKey:   cfg.AnthropicKey,
			AnthropicToken: cfg.AnthropicToken,
			OpenAIKey:      cfg.OpenAIKey,
			Model:          cfg.LLMModel,
			OllamaBaseURL:  cfg.OllamaBaseURL,
		})
		if err != nil {
			log.Fatalf("failed to create LLM client: %v", err)
		}
		dg = digest.New(database, client, bot, loc)
	}

	if err := bot.Start(tracker); err != nil {
		log.Fatalf("failed to start Discord bot: %v", err)
	}
	defer bot.Close()

	sched := scheduler.New(tracker, bot, dg, cfg.DigestCron, cfg.UserIDs, loc)
	sched.Start()
	defer sched.Stop()

	log.Println("bot is running. Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")
}

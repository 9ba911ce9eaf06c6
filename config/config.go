package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken   string
	DatabasePath   string
	Timezone       string
	UserIDs        []string // Discord user IDs that receive the journal
	LLMProvider    string   // anthropic, openai, ollama; empty disables the digest
	AnthropicKey   string   // API key (X-Api-Key header)
	AnthropicToken string   // OAuth token (Authorization: Bearer header)
	OpenAIKey      string
	LLMModel       string
	OllamaBaseURL  string
	DigestCron     string
}

func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env

	return &Config{
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		DatabasePath:   envOr("DATABASE_PATH", "./journal.db"),
		Timezone:       envOr("TIMEZONE", "Asia/Almaty"),
		UserIDs:        splitList(os.Getenv("JOURNAL_USERS")),
		LLMProvider:    os.Getenv("LLM_PROVIDER"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken: os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		OllamaBaseURL:  envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		DigestCron:     envOr("DIGEST_CRON", "0 9 * * 1"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

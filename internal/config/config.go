package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

type Config struct {
	Port string

	Provider   Provider
	MemoryMode domain.MemoryMode
	UseMockLLM bool // true = never touch a real provider

	GoogleAPIKey string
	OpenAIAPIKey string
	GeminiModel  string
	OpenAIModel  string

	CompletionTimeoutSeconds int
	CompletionMaxRetries     int
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Load reads all env vars and builds the config. Invalid provider or memory
// mode values, or a missing credential for the selected provider, fail here
// so a bad setup never reaches the pipeline.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PCI_PORT", "8080"),

		UseMockLLM: getBoolEnv("PCI_USE_MOCK_LLM", false),

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiModel:  getEnv("PCI_GEMINI_MODEL", "gemini-2.5-flash-lite"),
		OpenAIModel:  getEnv("PCI_OPENAI_MODEL", "gpt-4o-mini"),

		CompletionTimeoutSeconds: getIntEnv("PCI_COMPLETION_TIMEOUT_SECONDS", 30),
		CompletionMaxRetries:     getIntEnv("PCI_COMPLETION_MAX_RETRIES", 2),
	}

	switch p := Provider(getEnv("PCI_COMPLETION_PROVIDER", string(ProviderGemini))); p {
	case ProviderGemini, ProviderOpenAI:
		cfg.Provider = p
	default:
		return nil, fmt.Errorf("invalid PCI_COMPLETION_PROVIDER %q: must be %q or %q", p, ProviderGemini, ProviderOpenAI)
	}

	switch m := domain.MemoryMode(getEnv("PCI_MEMORY_MODE", string(domain.MemoryBuffer))); m {
	case domain.MemoryBuffer, domain.MemorySummary:
		cfg.MemoryMode = m
	default:
		return nil, fmt.Errorf("invalid PCI_MEMORY_MODE %q: must be %q or %q", m, domain.MemoryBuffer, domain.MemorySummary)
	}

	if !cfg.UseMockLLM {
		if cfg.Provider == ProviderGemini && cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY must be set when PCI_COMPLETION_PROVIDER=gemini")
		}
		if cfg.Provider == ProviderOpenAI && cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY must be set when PCI_COMPLETION_PROVIDER=openai")
		}
	}

	return cfg, nil
}

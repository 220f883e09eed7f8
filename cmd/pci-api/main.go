package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/PabloGalante/pci-agent/internal/adapters/http"
	"github.com/PabloGalante/pci-agent/internal/adapters/llm"
	memstore "github.com/PabloGalante/pci-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/pci-agent/internal/app/audit"
	"github.com/PabloGalante/pci-agent/internal/app/conversation"
	"github.com/PabloGalante/pci-agent/internal/app/tools"
	"github.com/PabloGalante/pci-agent/internal/config"
	"github.com/PabloGalante/pci-agent/internal/domain"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var llmClient domain.CompletionClient

	switch {
	case cfg.UseMockLLM:
		log.Println("[LLM] Using MOCK completion client")
		llmClient = llm.NewMockClient()

	case cfg.Provider == config.ProviderOpenAI:
		log.Printf("[LLM] Using OpenAI completion client (model=%s)", cfg.OpenAIModel)
		llmClient, err = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			log.Fatalf("error initializing OpenAI client: %v", err)
		}

	default:
		log.Printf("[LLM] Using Gemini completion client (model=%s)", cfg.GeminiModel)
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	if !cfg.UseMockLLM {
		llmClient = llm.NewRetryClient(llmClient, llm.RetryOptions{
			Timeout:    time.Duration(cfg.CompletionTimeoutSeconds) * time.Second,
			MaxRetries: cfg.CompletionMaxRetries,
		})
	}

	// In-memory storage only: sessions, transcripts and the audit trail
	// live for the lifetime of the process.
	sessionStore := memstore.NewSessionStore()
	messageStore := memstore.NewMessageStore()
	auditStore := memstore.NewAuditStore()

	auditTool := tools.NewAuditTool(auditStore)

	convSvc := conversation.NewService(llmClient, sessionStore, messageStore, auditTool, cfg.MemoryMode)
	auditSvc := audit.NewService(auditStore)

	handler := httpadapter.NewServer(convSvc, auditSvc)

	addr := ":" + cfg.Port
	log.Println("PCI agent API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}

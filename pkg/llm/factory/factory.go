package factory

import (
	"fmt"

	"fantasy-hoops-be/pkg/llm"
	"fantasy-hoops-be/pkg/llm/gemini"
	"fantasy-hoops-be/pkg/llm/ollama"
)

type Config struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	GeminiURL    string
	OllamaURL    string
}

// NewLLMProvider returns llm.ErrNotConfigured when the selected backend has
// no credentials; callers keep running and report chat as unavailable.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, llm.ErrNotConfigured
		}
		return gemini.NewGeminiProvider(cfg.GeminiURL, cfg.GeminiAPIKey, cfg.Model), nil
	case "ollama":
		model := cfg.Model
		if model == "" {
			model = "llama3"
		}
		return ollama.NewOllamaProvider(cfg.OllamaURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

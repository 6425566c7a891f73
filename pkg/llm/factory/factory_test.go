package factory

import (
	"testing"

	"fantasy-hoops-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "gemini"})
	assert.ErrorIs(t, err, llm.ErrNotConfigured)

	p, err := NewLLMProvider(Config{GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = NewLLMProvider(Config{Provider: "ollama"})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())

	_, err = NewLLMProvider(Config{Provider: "huggingface"})
	assert.Error(t, err)
}

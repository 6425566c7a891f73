// Package chat turns a roster and a client-held conversation into the
// request sent to the LLM provider.
package chat

import (
	"errors"
	"fmt"
	"strings"

	"fantasy-hoops-be/pkg/llm"
)

// MaxHistory bounds how many trailing turns reach the provider.
const MaxHistory = 20

var (
	ErrEmptyConversation = errors.New("messages must be a non-empty list")
	ErrInvalidRole       = errors.New("message role must be 'user' or 'assistant'")
	ErrEmptyContent      = errors.New("message content must not be empty")
)

type Turn struct {
	Role    string
	Content string
}

type RosterEntry struct {
	Name string
	Team string
}

// RosterContext is the roster as seen by the chat. Degraded is set when the
// roster could not be loaded and the chat proceeds without it.
type RosterContext struct {
	Entries  []RosterEntry
	Degraded bool
	Reason   string
}

func DegradedRoster(reason string) RosterContext {
	return RosterContext{Degraded: true, Reason: reason}
}

// ValidateTurns rejects malformed input before any provider call.
func ValidateTurns(turns []Turn) error {
	if len(turns) == 0 {
		return ErrEmptyConversation
	}
	for i, t := range turns {
		if t.Role != llm.RoleUser && t.Role != llm.RoleAssistant {
			return fmt.Errorf("messages[%d]: %w", i, ErrInvalidRole)
		}
		if strings.TrimSpace(t.Content) == "" {
			return fmt.Errorf("messages[%d]: %w", i, ErrEmptyContent)
		}
	}
	return nil
}

// Trim keeps the most recent MaxHistory turns.
func Trim(turns []Turn) []Turn {
	if len(turns) <= MaxHistory {
		return turns
	}
	return turns[len(turns)-MaxHistory:]
}

// FormatRoster renders "Name (Team), Name (Team)".
func FormatRoster(entries []RosterEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Name, e.Team))
	}
	return strings.Join(parts, ", ")
}

// SystemInstruction interpolates the roster section. An empty roster yields
// a section with no player list at all.
func SystemInstruction(roster RosterContext) string {
	section := rosterUnknown
	if len(roster.Entries) > 0 {
		section = fmt.Sprintf(rosterKnown, FormatRoster(roster.Entries))
	}
	return fmt.Sprintf(analystInstruction, section)
}

// Build trims the turns, validates what is left, then splits it into prior
// history and the final prompt. Turns dropped by the trim are never checked.
func Build(roster RosterContext, turns []Turn) (llm.Conversation, error) {
	trimmed := Trim(turns)
	if err := ValidateTurns(trimmed); err != nil {
		return llm.Conversation{}, err
	}

	history := make([]llm.Message, 0, len(trimmed)-1)
	for _, t := range trimmed[:len(trimmed)-1] {
		history = append(history, llm.Message{Role: t.Role, Content: t.Content})
	}

	return llm.Conversation{
		System:  SystemInstruction(roster),
		History: history,
		Prompt:  trimmed[len(trimmed)-1].Content,
	}, nil
}

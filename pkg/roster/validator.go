// Package roster decides whether a player name may be added to a roster and
// which team gets stored with it.
package roster

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"fantasy-hoops-be/pkg/directory"
	"fantasy-hoops-be/pkg/nba"

	"golang.org/x/text/unicode/norm"
)

const (
	MinNameLength = 2
	MaxNameLength = 60
)

var (
	ErrInvalidName      = errors.New("player name must be 2-60 characters and contain only letters separated by single spaces, hyphens, or apostrophes")
	ErrPlayerNotFound   = errors.New("player not found on an active NBA roster, please select a player from the suggestions")
	ErrUnresolvableTeam = errors.New("could not determine a valid team for this player")
	ErrInvalidTeam      = errors.New("please select a valid NBA team")
)

var namePattern = regexp.MustCompile(`^\p{L}+([ '\-]\p{L}+)*$`)

// ValidateName is the format filter applied before any lookup.
func ValidateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return ErrInvalidName
	}
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// Source says where a resolved team came from.
type Source string

const (
	SourceDirectory      Source = "directory"
	SourceClientFallback Source = "client_fallback"
)

type Resolution struct {
	Name   string
	Team   string
	Source Source
	// Cause is the directory error that forced the fallback, if any.
	Cause error
}

// Degraded is true when the team was taken from the client because the
// directory could not be consulted.
func (r Resolution) Degraded() bool {
	return r.Source == SourceClientFallback
}

type Directory interface {
	Lookup(ctx context.Context, name string) (directory.Player, bool, error)
}

type Validator struct {
	directory Directory
}

func NewValidator(dir Directory) *Validator {
	return &Validator{directory: dir}
}

// Resolve checks the name and picks the name and team to persist. A
// directory match always wins over requestedTeam and supplies the display
// name, so case variants of one player collapse onto a single roster row.
// requestedTeam is only trusted, and only if canonical, when the directory
// is unreachable.
func (v *Validator) Resolve(ctx context.Context, name, requestedTeam string) (Resolution, error) {
	// combining marks are not \p{L}, so compose before the format check
	name = norm.NFC.String(strings.TrimSpace(name))
	requestedTeam = strings.TrimSpace(requestedTeam)

	if err := ValidateName(name); err != nil {
		return Resolution{}, err
	}

	player, found, err := v.directory.Lookup(ctx, name)
	if err != nil {
		if !nba.IsCanonical(requestedTeam) {
			return Resolution{}, ErrInvalidTeam
		}
		return Resolution{
			Name:   name,
			Team:   requestedTeam,
			Source: SourceClientFallback,
			Cause:  err,
		}, nil
	}
	if !found {
		return Resolution{}, ErrPlayerNotFound
	}
	if !nba.IsCanonical(player.Team) {
		return Resolution{}, ErrUnresolvableTeam
	}

	return Resolution{
		Name:   player.Name,
		Team:   player.Team,
		Source: SourceDirectory,
	}, nil
}

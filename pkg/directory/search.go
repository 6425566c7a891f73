package directory

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/unicode/norm"
)

const (
	MinQueryLength = 2
	SearchLimit    = 8
)

// QueryTooShort reports whether a trimmed query is below the autocomplete
// threshold. Short queries never reach the snapshot.
func QueryTooShort(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength
}

// Search returns up to limit players having a space-delimited name word that
// starts with the normalized query. Snapshot order is preserved.
func (s *Snapshot) Search(query string, limit int) []Player {
	return Search(s.players, query, limit)
}

func Search(players []Player, query string, limit int) []Player {
	result := make([]Player, 0, limit)
	if QueryTooShort(query) || limit <= 0 {
		return result
	}

	q := strings.ToLower(norm.NFC.String(strings.TrimSpace(query)))
	for _, p := range players {
		if matchesWordPrefix(strings.ToLower(p.Name), q) {
			result = append(result, p)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

func matchesWordPrefix(name, q string) bool {
	for _, part := range strings.Split(name, " ") {
		if strings.HasPrefix(part, q) {
			return true
		}
	}
	return false
}

func sortPlayers(players []Player, col *collate.Collator) {
	sort.SliceStable(players, func(i, j int) bool {
		return col.CompareString(players[i].Name, players[j].Name) < 0
	})
}

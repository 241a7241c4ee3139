package launch

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Rocket struct {
	RocketName string `json:"rocket_name"`
	RocketType string `json:"rocket_type"`
}

// Launch is a single launch record as returned by the launches query.
type Launch struct {
	MissionName string `json:"mission_name"`
	Rocket      Rocket `json:"rocket"`
}

// Key identifies a row. Mission names alone are not unique.
func (l Launch) Key() string {
	return l.MissionName + "\x00" + l.Rocket.RocketName
}

// Sorter orders launches by mission name using the collation rules of a locale.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{
		collator: collate.New(tag),
	}
}

// Sort sorts launches in place. Equal mission names keep their order.
func (s *Sorter) Sort(launches []Launch) {
	// collate.Collator keeps internal buffers.
	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(launches, func(a, b Launch) int {
		return s.collator.CompareString(a.MissionName, b.MissionName)
	})
}

// Filter returns the launches whose rocket name contains searchText, ignoring case.
// The input slice is never modified.
func Filter(launches []Launch, searchText string) []Launch {
	needle := strings.ToLower(searchText)
	filtered := make([]Launch, 0, len(launches))

	for _, l := range launches {
		if strings.Contains(strings.ToLower(l.Rocket.RocketName), needle) {
			filtered = append(filtered, l)
		}
	}

	return filtered
}

// Derive filters launches by rocket name and, when searchText is not blank,
// sorts the result by mission name.
func Derive(launches []Launch, searchText string, sorter *Sorter) []Launch {
	filtered := Filter(launches, searchText)

	if strings.TrimSpace(searchText) == "" {
		return filtered
	}

	sorter.Sort(filtered)

	return filtered
}

package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

var (
	zeta  = Launch{MissionName: "Zeta", Rocket: Rocket{RocketName: "Falcon 9", RocketType: "F9"}}
	alpha = Launch{MissionName: "Alpha", Rocket: Rocket{RocketName: "Falcon Heavy", RocketType: "FH"}}
	delta = Launch{MissionName: "delta", Rocket: Rocket{RocketName: "Electron", RocketType: "E"}}
)

func TestDerive(t *testing.T) {
	sorter := NewSorter(language.English)

	tests := []struct {
		name       string
		launches   []Launch
		searchText string
		want       []Launch
	}{
		{
			name:       "sorted when searching",
			launches:   []Launch{zeta, alpha},
			searchText: "falcon",
			want:       []Launch{alpha, zeta},
		},
		{
			name:       "server order when search is empty",
			launches:   []Launch{zeta, alpha},
			searchText: "",
			want:       []Launch{zeta, alpha},
		},
		{
			name:       "case insensitive match",
			launches:   []Launch{zeta, delta, alpha},
			searchText: "HEAVY",
			want:       []Launch{alpha},
		},
		{
			name:       "no match",
			launches:   []Launch{zeta, alpha},
			searchText: "starship",
			want:       []Launch{},
		},
		{
			name:       "empty response",
			launches:   nil,
			searchText: "falcon",
			want:       []Launch{},
		},
		{
			name:       "locale order ignores case",
			launches:   []Launch{zeta, delta, alpha},
			searchText: "o",
			want:       []Launch{alpha, delta, zeta},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.launches, tt.searchText, sorter))
		})
	}
}

func TestDeriveDoesNotModifyInput(t *testing.T) {
	launches := []Launch{zeta, alpha}

	_ = Derive(launches, "falcon", NewSorter(language.English))

	assert.Equal(t, []Launch{zeta, alpha}, launches)
}

func TestDeriveBlankSearchKeepsOrder(t *testing.T) {
	launches := []Launch{
		{MissionName: "B", Rocket: Rocket{RocketName: "a b"}},
		{MissionName: "A", Rocket: Rocket{RocketName: "c d"}},
	}

	got := Derive(launches, " ", NewSorter(language.English))

	assert.Equal(t, launches, got)
}

func TestKey(t *testing.T) {
	a := Launch{MissionName: "CRS-1", Rocket: Rocket{RocketName: "Falcon 9"}}
	b := Launch{MissionName: "CRS-1", Rocket: Rocket{RocketName: "Falcon Heavy"}}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, a.Key(), a.Key())
}

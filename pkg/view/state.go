package view

import (
	"github.com/sachaos/launchy/pkg/launch"
)

type Phase int

const (
	// PhaseIdle is before the first response.
	PhaseIdle Phase = iota
	// PhaseLoading is while the first request is in flight.
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the state of the launch view. It is not safe for concurrent use;
// the application only touches it from the UI goroutine.
type State struct {
	sorter *launch.Sorter

	searchText string
	raw        []launch.Launch
	rows       []launch.Launch
	dataLoaded bool

	latestID int64
	inFlight bool
	err      error
}

func NewState(sorter *launch.Sorter) *State {
	return &State{
		sorter: sorter,
	}
}

func (s *State) SearchText() string {
	return s.searchText
}

// SetSearchText updates the search text and re-derives the rows from the last
// response. It never issues a request.
func (s *State) SetSearchText(text string) {
	s.searchText = text

	if s.dataLoaded {
		s.derive()
	}
}

// Submit starts a new request generation and returns its id together with the
// search text to send. Rows from earlier responses stay visible.
func (s *State) Submit() (int64, string) {
	s.latestID++
	s.inFlight = true

	return s.latestID, s.searchText
}

// Resolve applies the response of request id. Responses of any request but the
// latest are dropped and false is returned.
func (s *State) Resolve(id int64, launches []launch.Launch, err error) bool {
	if id != s.latestID {
		return false
	}

	s.inFlight = false

	if err != nil {
		s.err = err

		return true
	}

	s.err = nil
	s.raw = launches
	s.dataLoaded = true
	s.derive()

	return true
}

func (s *State) derive() {
	s.rows = launch.Derive(s.raw, s.searchText, s.sorter)
}

func (s *State) Phase() Phase {
	switch {
	case !s.dataLoaded && s.inFlight:
		return PhaseLoading
	case s.err != nil:
		return PhaseError
	case s.dataLoaded || len(s.rows) > 0:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

func (s *State) Rows() []launch.Launch {
	return s.rows
}

func (s *State) Err() error {
	return s.err
}

func (s *State) InFlight() bool {
	return s.inFlight
}

func (s *State) DataLoaded() bool {
	return s.dataLoaded
}

func (s *State) LatestID() int64 {
	return s.latestID
}

package skola24

import "errors"

var (
	// no X-Scope header was observed before the schedule page finished
	// its initial navigation
	ErrMissingAuthorizationScope = errors.New("no X-Scope header observed in page traffic")
	ErrRenderKeyFetch            = errors.New("failed to fetch render key")
	ErrRenderRejected            = errors.New("render request rejected by the timetable service")
	ErrCorrelationMissing        = errors.New("lesson has no matching layout box")
	ErrMalformedTime             = errors.New("malformed time of day")
)

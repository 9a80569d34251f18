package routing

import "strings"

// Destination names one of the external calendars an event can be published
// to. None is a valid terminal routing outcome, not an error.
type Destination string

const (
	DestinationNone     Destination = "none"
	DestinationMember   Destination = "member"
	DestinationPublic   Destination = "public"
	DestinationBuilding Destination = "building"
)

// ResolveDestination classifies free-text audience wording into a publish
// destination. Matching is case-insensitive substring matching with a fixed
// precedence:
//
//  1. "private" wins over everything: a private event is never published,
//     whatever else the text says.
//  2. "members" routes to the member calendar.
//  3. "general public" or "public" routes to the public calendar.
//  4. anything else routes nowhere.
func ResolveDestination(audience string) Destination {
	text := strings.ToLower(strings.TrimSpace(audience))
	switch {
	case strings.Contains(text, "private"):
		return DestinationNone
	case strings.Contains(text, "members"):
		return DestinationMember
	case strings.Contains(text, "general public"), strings.Contains(text, "public"):
		return DestinationPublic
	default:
		return DestinationNone
	}
}

// ResolveFacilityDestination routes to the building calendar whenever a
// space request was filled in at all. Independent of the audience routing.
func ResolveFacilityDestination(spaceRequest string) Destination {
	if strings.TrimSpace(spaceRequest) == "" {
		return DestinationNone
	}
	return DestinationBuilding
}

// PaddingMinutes maps the setup/teardown selection to minutes of padding
// around the facility booking. Unknown labels get no padding.
func PaddingMinutes(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "30 minutes", "30min", "30":
		return 30
	case "1 hour", "1hr":
		return 60
	case "2 hours", "2hr":
		return 120
	default:
		return 0
	}
}

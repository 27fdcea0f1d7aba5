// Package identifier classifies raw player searches into the identifier kinds
// the resolver knows how to look up.
package identifier

import "regexp"

// Kind is the identifier format a search string was written in.
type Kind int

const (
	NumericAccountID Kind = iota
	ProfileURL
	VanityURL
	ServiceNickname
)

func (k Kind) String() string {
	switch k {
	case NumericAccountID:
		return "steamid64"
	case ProfileURL:
		return "profile_url"
	case VanityURL:
		return "vanity_url"
	default:
		return "faceit_nickname"
	}
}

var (
	steamID64Pattern  = regexp.MustCompile(`^[0-9]{17}$`)
	profileURLPattern = regexp.MustCompile(`^https?://steamcommunity\.com/profiles/([a-zA-Z0-9_-]+)/?$`)
	vanityURLPattern  = regexp.MustCompile(`^https?://steamcommunity\.com/id/([a-zA-Z0-9_-]+)/?$`)
)

// Classify never fails: anything that is not a SteamID64 or a Steam profile
// link is treated as a FACEIT nickname.
func Classify(input string) Kind {
	switch {
	case steamID64Pattern.MatchString(input):
		return NumericAccountID
	case profileURLPattern.MatchString(input):
		return ProfileURL
	case vanityURLPattern.MatchString(input):
		return VanityURL
	default:
		return ServiceNickname
	}
}

// ProfileToken returns the id segment of a /profiles/ link.
func ProfileToken(input string) (string, bool) {
	return token(profileURLPattern, input)
}

// VanityToken returns the custom name segment of an /id/ link.
func VanityToken(input string) (string, bool) {
	return token(vanityURLPattern, input)
}

func token(re *regexp.Regexp, input string) (string, bool) {
	m := re.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	return m[1], true
}

package stream

import "regexp"

var videoIDRE = regexp.MustCompile(`(?:v=|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11 character id out of a watch or short link
func ExtractVideoID(url string) (string, bool) {
	m := videoIDRE.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	widthDescRe   = regexp.MustCompile(`^\d+w$`)
	densityDescRe = regexp.MustCompile(`^[\d.]+x$`)
)

// parseSrcset parses an HTML srcset-style declaration: a comma-separated
// list of "url [descriptor]" tokens where the descriptor is either an
// integer width ("480w") or a float density ("1.5x"). A malformed descriptor
// never rejects its token; the token degrades to a url-only descriptor. The
// trimmed source token is preserved in Raw, so re-parsing Raw is idempotent.
func parseSrcset(srcset string) []Image {
	var images []Image
	for _, token := range strings.Split(srcset, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		img := Image{Raw: token, URL: token}

		// Split on the last run of whitespace: the url itself never
		// contains spaces, the descriptor never contains more than one
		// trailing token.
		if idx := strings.LastIndexAny(token, " \t"); idx >= 0 {
			img.URL = strings.TrimSpace(token[:idx])
			desc := strings.TrimSpace(token[idx+1:])
			switch {
			case widthDescRe.MatchString(desc):
				if width, err := strconv.Atoi(strings.TrimSuffix(desc, "w")); err == nil {
					img.Width = width
				}
			case densityDescRe.MatchString(desc):
				if density, err := strconv.ParseFloat(strings.TrimSuffix(desc, "x"), 64); err == nil {
					img.Density = density
				}
			}
			// Any other descriptor is discarded and only the url kept.
		}

		images = append(images, img)
	}
	return images
}

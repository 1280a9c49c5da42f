package edit

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleWordLimit caps how many opening words feed a derived title.
const titleWordLimit = 6

// deriveTitle builds a display title from the opening words of a trimmed
// text when the model supplied none. The caser is built per call; cases
// casers are stateful and not safe to share across goroutines.
func deriveTitle(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) > titleWordLimit {
		fields = fields[:titleWordLimit]
	}
	title := strings.Join(fields, " ")
	title = strings.Trim(title, ".,!?;:")
	return cases.Title(language.Und).String(title)
}

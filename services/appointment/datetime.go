package appointment

import (
	"errors"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var errUnparsableDateTime = errors.New("unparsable date/time expression")

// dateParser handles natural-language expressions like "tomorrow at 2pm".
var dateParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// Strict fallback layouts, tried in order when natural-language parsing
// yields nothing.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 3:04 PM",
}

// parseDateTime resolves a user-supplied date/time expression relative to ref.
func parseDateTime(input string, ref time.Time) (time.Time, error) {
	if r, err := dateParser.Parse(input, ref); err == nil && r != nil {
		return r.Time, nil
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, input, ref.Location()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errUnparsableDateTime
}

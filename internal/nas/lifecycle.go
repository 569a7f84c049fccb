package nas

import (
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

const lifecyclePath = ".//ax:lebenszeitintervall/ax:AA_Lebenszeitintervall/ax:beginnt"

// lifecycleStart reads the nested Lebenszeitintervall begin timestamp of a
// feature element and parses it as a UTC-normalized instant. A trailing
// literal Z is normalized to an explicit +00:00 offset first. Unparseable
// text is logged and yields nil, never an error: a bad timestamp on one
// feature must not abort the document.
func lifecycleStart(el *xmlquery.Node, ns map[string]string) *time.Time {
	text := findText(el, lifecyclePath, ns)
	if text == nil || *text == "" {
		return nil
	}

	normalized := *text
	if strings.HasSuffix(normalized, "Z") {
		normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
	}

	t, err := time.Parse(time.RFC3339Nano, normalized)
	if err != nil {
		// Some exports omit the offset entirely; treat those as UTC.
		t, err = time.Parse("2006-01-02T15:04:05", normalized)
	}
	if err != nil {
		zap.L().Warn("nas: invalid lifecycle timestamp", zap.String("text", *text), zap.Error(err))
		return nil
	}

	utc := t.UTC()
	return &utc
}

package nas

import (
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// extractBookingEntries builds the AX_Buchungsstelle table.
func extractBookingEntries(doc *xmlquery.Node, ns map[string]string) ([]BookingEntry, error) {
	elements, err := featureElements(doc, "ax:AX_Buchungsstelle", ns)
	if err != nil {
		return nil, err
	}

	entries := make([]BookingEntry, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: buchungsstelle without gml:id, skipping")
			continue
		}

		entries = append(entries, BookingEntry{
			ID:            TrimIDPrefix(*id),
			BookingType:   findText(el, "ax:buchungsart", ns),
			RunningNumber: findText(el, "ax:laufendeNummer", ns),
			LedgerID:      findRef(el, "ax:istBestandteilVon", ns),
		})
	}

	return entries, nil
}

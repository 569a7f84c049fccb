package nas

import (
	"strconv"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// extractNameEntries builds the AX_Namensnummer table. The ownership share
// is zaehler/nenner when both are present, 1.0 otherwise. A zero nenner is
// invalid register data; the division propagates +Inf rather than aborting
// the document.
func extractNameEntries(doc *xmlquery.Node, ns map[string]string) ([]NameEntry, error) {
	elements, err := featureElements(doc, "ax:AX_Namensnummer", ns)
	if err != nil {
		return nil, err
	}

	entries := make([]NameEntry, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: namensnummer without gml:id, skipping")
			continue
		}

		entry := NameEntry{
			ID:             TrimIDPrefix(*id),
			PersonID:       findRef(el, "ax:benennt", ns),
			RunningNumber:  findText(el, "ax:laufendeNummerNachDIN1421", ns),
			LedgerID:       findRef(el, "ax:istBestandteilVon", ns),
			Occasion:       findAttr(el, "ax:anlass", ns, xlinkNS, "xlink", "title"),
			CommunityType:  findText(el, "ax:artDerRechtsgemeinschaft", ns),
			RelationshipID: findRef(el, "ax:bestehtAusRechtsverhaeltnissenZu", ns),
			Share:          1.0,
		}

		numerator := findText(el, "ax:anteil/ax:AX_Anteil/ax:zaehler", ns)
		denominator := findText(el, "ax:anteil/ax:AX_Anteil/ax:nenner", ns)
		if numerator != nil && denominator != nil {
			z, errZ := strconv.ParseFloat(*numerator, 64)
			n, errN := strconv.ParseFloat(*denominator, 64)
			if errZ != nil || errN != nil {
				zap.L().Warn("nas: unparseable anteil",
					zap.String("id", entry.ID),
					zap.String("zaehler", *numerator),
					zap.String("nenner", *denominator))
			} else {
				entry.Share = z / n
			}
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

package nas

import (
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// extractLedgers builds the AX_Buchungsblatt table. The combined district
// key is state+district, only set when both sub-keys are present.
func extractLedgers(doc *xmlquery.Node, ns map[string]string) ([]Ledger, error) {
	elements, err := featureElements(doc, "ax:AX_Buchungsblatt", ns)
	if err != nil {
		return nil, err
	}

	ledgers := make([]Ledger, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: buchungsblatt without gml:id, skipping")
			continue
		}

		l := Ledger{
			ID:            TrimIDPrefix(*id),
			Designator:    findText(el, "ax:buchungsblattkennzeichen", ns),
			Number:        findText(el, "ax:buchungsblattnummerMitBuchstabenerweiterung", ns),
			SheetType:     findText(el, "ax:blattart", ns),
			LifecycleFrom: lifecycleStart(el, ns),
			Occasion:      findText(el, "ax:anlass", ns),
		}

		key, err := findElement(el, "ax:buchungsblattbezirk/ax:AX_Buchungsblattbezirk_Schluessel", ns)
		if err != nil {
			return nil, err
		}
		l.StateKey = childBySuffix(key, "land")
		l.DistrictKey = childBySuffix(key, "bezirk")
		if l.StateKey != nil && l.DistrictKey != nil {
			combined := *l.StateKey + *l.DistrictKey
			l.CombinedKey = &combined
		}

		ledgers = append(ledgers, l)
	}

	return ledgers, nil
}

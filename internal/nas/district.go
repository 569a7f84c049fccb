package nas

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// childBySuffix returns the text of the first child element whose local name
// ends in suffix. Composite keys are matched on tag suffix rather than exact
// qualified name, a deliberate tolerance for prefix variation across schema
// versions.
func childBySuffix(el *xmlquery.Node, suffix string) *string {
	if el == nil {
		return nil
	}
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if strings.HasSuffix(c.Data, suffix) {
			text := c.InnerText()
			return &text
		}
	}
	return nil
}

// extractLedgerDistricts builds the AX_Buchungsblattbezirk table.
func extractLedgerDistricts(doc *xmlquery.Node, ns map[string]string) ([]LedgerDistrict, error) {
	elements, err := featureElements(doc, "ax:AX_Buchungsblattbezirk", ns)
	if err != nil {
		return nil, err
	}

	districts := make([]LedgerDistrict, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: buchungsblattbezirk without gml:id, skipping")
			continue
		}

		d := LedgerDistrict{
			ID:            TrimIDPrefix(*id),
			CombinedKey:   findText(el, "ax:schluesselGesamt", ns),
			Name:          findText(el, "ax:bezeichnung", ns),
			LifecycleFrom: lifecycleStart(el, ns),
			Occasion:      findText(el, "ax:anlass", ns),
		}

		key, err := findElement(el, "ax:schluessel/ax:AX_Buchungsblattbezirk_Schluessel", ns)
		if err != nil {
			return nil, err
		}
		d.StateKey = childBySuffix(key, "land")
		d.DistrictKey = childBySuffix(key, "bezirk")

		office, err := findElement(el, "ax:gehoertZu/ax:AX_Dienststelle_Schluessel", ns)
		if err != nil {
			return nil, err
		}
		d.OfficeState = childBySuffix(office, "land")
		d.OfficeKey = childBySuffix(office, "stelle")

		districts = append(districts, d)
	}

	return districts, nil
}

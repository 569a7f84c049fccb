package nas

import (
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// extractAddresses builds the AX_Anschrift table.
func extractAddresses(doc *xmlquery.Node, ns map[string]string) ([]Address, error) {
	elements, err := featureElements(doc, "ax:AX_Anschrift", ns)
	if err != nil {
		return nil, err
	}

	addresses := make([]Address, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: anschrift without gml:id, skipping")
			continue
		}

		addresses = append(addresses, Address{
			ID:            TrimIDPrefix(*id),
			Locality:      findText(el, "ax:ort_Post", ns),
			PostalCode:    findText(el, "ax:postleitzahlPostzustellung", ns),
			Street:        findText(el, "ax:strasse", ns),
			HouseNumber:   findText(el, "ax:hausnummer", ns),
			DistrictPart:  findText(el, "ax:ortsteil", ns),
			LifecycleFrom: lifecycleStart(el, ns),
			Occasion:      findText(el, "ax:anlass", ns),
			Phone:         findText(el, "ax:TEL", ns),
			MoreAddresses: findText(el, "ax:weitereAdressen", ns),
		})
	}

	return addresses, nil
}

package nas

import (
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
)

// extractPersons builds the AX_Person table.
func extractPersons(doc *xmlquery.Node, ns map[string]string) ([]Person, error) {
	elements, err := featureElements(doc, "ax:AX_Person", ns)
	if err != nil {
		return nil, err
	}

	persons := make([]Person, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: person without gml:id, skipping")
			continue
		}

		persons = append(persons, Person{
			ID:            TrimIDPrefix(*id),
			SurnameOrFirm: findText(el, "ax:nachnameOderFirma", ns),
			GivenName:     findText(el, "ax:vorname", ns),
			Salutation:    findText(el, "ax:anrede", ns),
			NameComponent: findText(el, "ax:namensbestandteil", ns),
			AcademicTitle: findText(el, "ax:akademischerGrad", ns),
			BirthName:     findText(el, "ax:geburtsname", ns),
			BirthDate:     findText(el, "ax:geburtsdatum", ns),
			AddressID:     findRef(el, "ax:hat", ns),
			LifecycleFrom: lifecycleStart(el, ns),
			Occasion:      findText(el, "ax:anlass", ns),
		})
	}

	return persons, nil
}

package nas

import (
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// extractParcels builds the AX_Flurstueck table and joins each row onto its
// decoded geometry by parcel id. The join is an inner join: parcels present
// only in the geometry layer or only as scalar features are dropped.
func extractParcels(doc *xmlquery.Node, ns map[string]string, geometries map[string]geom.T) ([]Parcel, error) {
	elements, err := featureElements(doc, "ax:AX_Flurstueck", ns)
	if err != nil {
		return nil, err
	}

	parcels := make([]Parcel, 0, len(elements))
	for _, el := range elements {
		id := gmlID(el)
		if id == nil {
			zap.L().Warn("nas: flurstueck without gml:id, skipping")
			continue
		}

		p := Parcel{
			ID:            TrimIDPrefix(*id),
			Designator:    findText(el, "ax:flurstueckskennzeichen", ns),
			CreatedAt:     findText(el, "ax:zeitpunktDerEntstehung", ns),
			LifecycleFrom: lifecycleStart(el, ns),
			BookingID:     findRef(el, "ax:istGebucht", ns),
			LocationID:    findRef(el, "ax:zeigtAuf", ns),
		}

		if area := findText(el, "ax:amtlicheFlaeche", ns); area != nil {
			v, err := strconv.ParseFloat(*area, 64)
			if err != nil {
				zap.L().Warn("nas: unparseable amtliche_flaeche",
					zap.String("id", p.ID), zap.String("text", *area))
			} else {
				p.OfficialArea = &v
			}
		}

		g, ok := geometries[p.ID]
		if !ok {
			zap.L().Debug("nas: flurstueck without decoded geometry, dropped by join",
				zap.String("id", p.ID))
			continue
		}
		p.Geometry = g

		parcels = append(parcels, p)
	}

	return parcels, nil
}

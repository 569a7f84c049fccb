package nas

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/openkataster/nasextract/internal/gml"
)

// DefaultLayer is the feature layer carrying parcel geometry.
const DefaultLayer = "AX_Flurstueck"

// Extract runs the full pipeline on one document using the default parcel
// layer. See ExtractLayer.
func Extract(data []byte) (*Result, error) {
	return ExtractLayer(data, DefaultLayer)
}

// ExtractLayer builds all seven tables from one NAS document in a single
// synchronous sequence: namespace resolution, parse, CRS extraction,
// malformed-member removal, geometry decoding, then the entity extractors
// in fixed order. The returned Result is a finished snapshot; neither the
// raw bytes nor the element tree are retained by it.
func ExtractLayer(data []byte, layer string) (*Result, error) {
	namespaces := ResolveNamespaces(data)

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	crs, err := extractCRS(doc, namespaces)
	if err != nil {
		return nil, err
	}
	if crs == "" {
		zap.L().Warn("nas: document declares no authoritative crs")
	}

	// Must precede geometry decoding: decoding is far more expensive and
	// chokes on the corrupt members this removes.
	if err := removeBrokenMembers(doc, namespaces); err != nil {
		return nil, err
	}

	// The decoder needs its own structural entry point into the source, so
	// it re-reads the raw bytes rather than the mutated in-memory tree.
	layerColl, err := gml.DecodeLayer(data, layer)
	if err != nil {
		return nil, err
	}
	layerColl.CRS = crs

	geometries := make(map[string]geom.T, len(layerColl.Features))
	for _, f := range layerColl.Features {
		geometries[TrimIDPrefix(f.ID)] = f.Geometry
	}

	result := &Result{CRS: crs}

	if result.Parcels, err = extractParcels(doc, namespaces, geometries); err != nil {
		return nil, err
	}
	if result.Persons, err = extractPersons(doc, namespaces); err != nil {
		return nil, err
	}
	if result.Districts, err = extractLedgerDistricts(doc, namespaces); err != nil {
		return nil, err
	}
	if result.Ledgers, err = extractLedgers(doc, namespaces); err != nil {
		return nil, err
	}
	if result.Addresses, err = extractAddresses(doc, namespaces); err != nil {
		return nil, err
	}
	if result.NameEntries, err = extractNameEntries(doc, namespaces); err != nil {
		return nil, err
	}
	if result.BookingEntries, err = extractBookingEntries(doc, namespaces); err != nil {
		return nil, err
	}

	return result, nil
}

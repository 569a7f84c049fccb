package nas

import "strings"

// URN prefixes used by the AdV for object identifiers and CRS references.
const (
	idPrefix  = "urn:adv:oid:"
	crsPrefix = "urn:adv:crs:"
)

// Namespace URIs fixed by the GML and XLink standards. The ax namespace is
// version-dependent and resolved per document, these two are not.
const (
	gmlNS   = "http://www.opengis.net/gml/3.2"
	xlinkNS = "http://www.w3.org/1999/xlink"
)

// TrimIDPrefix strips the AdV object-identifier URN prefix. Strings without
// the prefix are returned unchanged; the operation is idempotent.
func TrimIDPrefix(s string) string {
	return strings.TrimPrefix(s, idPrefix)
}

// TrimCRSPrefix strips the AdV CRS URN prefix. Strings without the prefix
// are returned unchanged.
func TrimCRSPrefix(s string) string {
	return strings.TrimPrefix(s, crsPrefix)
}

// Package nas extracts relational tables from German ALKIS/NAS cadastral
// documents (GML/XML feature collections). One document in, seven tables out:
// parcels (with geometry), persons, addresses, land-register ledgers and
// their districts, booking entries, and ownership-share name entries.
//
// Extraction is a single synchronous pass. Fatal conditions (unparseable
// document, malformed CRS token, a mandatory feature type missing entirely)
// abort the whole document; per-field defects are logged and tolerated,
// because real cadastral extracts are inconsistently populated across
// municipalities.
package nas

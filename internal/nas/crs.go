package nas

import (
	"fmt"
	"regexp"

	"github.com/antchfx/xmlquery"
	"github.com/rotisserie/eris"
)

var crsPattern = regexp.MustCompile(`(?i)^ETRS89_UTM(\d+)$`)

// FormatCRSName reformats an AdV CRS token into its display name, e.g.
// "ETRS89_UTM33" becomes "ETRS89 / UTM zone 33N". The match is
// case-insensitive; any other shape fails with ErrCRSFormat carrying the
// offending token, since an unparseable CRS invalidates every geometry
// downstream.
func FormatCRSName(token string) (string, error) {
	m := crsPattern.FindStringSubmatch(token)
	if m == nil {
		return "", eris.Wrapf(ErrCRSFormat, "%q is not in the expected form ETRS89_UTM<zone>", token)
	}
	return fmt.Sprintf("ETRS89 / UTM zone %sN", m[1]), nil
}

const crsDeclPath = "//ax:koordinatenangaben/ax:AA_Koordinatenreferenzsystemangaben"

// extractCRS locates the authoritative coordinate reference system of the
// document. Only declarations whose ax:standard flag is the literal "true"
// count; the first such declaration in document order wins. Returns the
// empty string when no authoritative declaration exists, in which case
// geometries stay untagged.
func extractCRS(doc *xmlquery.Node, ns map[string]string) (string, error) {
	decls, err := findElements(doc, crsDeclPath, ns)
	if err != nil {
		return "", err
	}

	for _, decl := range decls {
		standard := findText(decl, "ax:standard", ns)
		if standard == nil || *standard != "true" {
			continue
		}

		href := findAttr(decl, "ax:crs", ns, xlinkNS, "xlink", "href")
		if href == nil {
			continue
		}

		name, err := FormatCRSName(TrimCRSPrefix(*href))
		if err != nil {
			return "", eris.Wrapf(err, "nas: format crs %q", *href)
		}
		return name, nil
	}

	return "", nil
}

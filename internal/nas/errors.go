package nas

import "github.com/rotisserie/eris"

// Sentinel errors for the fatal failure modes of a document extraction.
// Wrapped instances carry context; match with errors.Is.
var (
	// ErrParse marks input bytes that cannot be recovered into a tree.
	ErrParse = eris.New("nas: document is not parseable")

	// ErrCRSFormat marks a CRS token outside the ETRS89_UTM<zone> pattern.
	ErrCRSFormat = eris.New("nas: unexpected crs format")

	// ErrNoFeatures marks a mandatory feature type with zero matches under
	// both schema-version container paths.
	ErrNoFeatures = eris.New("nas: no matching feature elements")
)

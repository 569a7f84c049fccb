package nas

import (
	"bytes"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// charsetReader resolves non-UTF-8 charsets declared by the document,
// mirroring the lenient decoding NAS exports occasionally require.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, eris.Wrapf(err, "nas: unsupported charset %q", charset)
	}
	return enc.NewDecoder().Reader(input), nil
}

// ParseDocument parses raw bytes into a navigable, namespace-aware tree.
// Decoding is non-strict so recoverable markup defects survive, and the
// decoder transcodes whatever charset the prolog declares; input that
// cannot be recovered into any tree at all fails with ErrParse.
func ParseDocument(data []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        false,
			CharsetReader: charsetReader,
		},
	})
	if err != nil {
		zap.L().Error("nas: parse document", zap.Error(err))
		return nil, eris.Wrapf(ErrParse, "parse document: %v", err)
	}
	return doc, nil
}

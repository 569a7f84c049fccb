package nas

import (
	"bytes"
	"encoding/xml"
)

// Schema versions whose namespace is re-aliased to the stable prefix "ax".
// Documents in the wild declare either, sometimes as the default namespace.
var axSchemaURIs = []string{
	"http://www.adv-online.de/namespaces/adv/gid/7.1",
	"http://www.adv-online.de/namespaces/adv/gid/6.0",
}

func isAXSchema(uri string) bool {
	for _, u := range axSchemaURIs {
		if uri == u {
			return true
		}
	}
	return false
}

// ResolveNamespaces scans every namespace declaration in the document, not
// just the root, since the AdV namespace may appear only on nested elements.
// Empty prefixes are dropped (unusable in qualified XPath expressions); any
// URI matching a supported schema version is additionally registered under
// the alias "ax" so downstream queries use one prefix regardless of schema
// version. When several schema-version URIs coexist the last declaration
// wins; that tie-break is inherited behavior and deliberately kept.
func ResolveNamespaces(data []byte) map[string]string {
	type decl struct {
		prefix string
		uri    string
	}

	var decls []decl
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.CharsetReader = charsetReader

	for {
		tok, err := dec.Token()
		if err != nil {
			// Unrecoverable markup is the document loader's problem;
			// keep whatever declarations were seen up to this point.
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		for _, attr := range se.Attr {
			switch {
			case attr.Name.Space == "xmlns":
				decls = append(decls, decl{prefix: attr.Name.Local, uri: attr.Value})
			case attr.Name.Space == "" && attr.Name.Local == "xmlns":
				decls = append(decls, decl{prefix: "", uri: attr.Value})
			}
		}
	}

	namespaces := make(map[string]string, len(decls))
	for _, d := range decls {
		if d.prefix != "" {
			namespaces[d.prefix] = d.uri
		}
	}

	for _, d := range decls {
		if d.prefix == "" && isAXSchema(d.uri) {
			namespaces["ax"] = d.uri
		}
	}
	for _, d := range decls {
		if d.prefix != "" && isAXSchema(d.uri) {
			namespaces["ax"] = d.uri
		}
	}

	return namespaces
}

package nas

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// findElements runs a namespace-qualified XPath query below top.
func findElements(top *xmlquery.Node, expr string, ns map[string]string) ([]*xmlquery.Node, error) {
	compiled, err := xpath.CompileWithNS(expr, ns)
	if err != nil {
		return nil, eris.Wrapf(err, "nas: compile xpath %s", expr)
	}
	return xmlquery.QuerySelectorAll(top, compiled), nil
}

// findElement returns the first match of expr below top, or nil.
func findElement(top *xmlquery.Node, expr string, ns map[string]string) (*xmlquery.Node, error) {
	compiled, err := xpath.CompileWithNS(expr, ns)
	if err != nil {
		return nil, eris.Wrapf(err, "nas: compile xpath %s", expr)
	}
	return xmlquery.QuerySelector(top, compiled), nil
}

// findText returns the text of the first element matching the relative
// path, or nil when the element is absent. An existing but empty element
// yields an empty string, matching the distinction the extractors rely on.
func findText(el *xmlquery.Node, expr string, ns map[string]string) *string {
	node, err := findElement(el, expr, ns)
	if err != nil {
		zap.L().Warn("nas: bad text query", zap.String("path", expr), zap.Error(err))
		return nil
	}
	if node == nil {
		return nil
	}
	text := node.InnerText()
	return &text
}

// attrValue reads an attribute directly off a node, matched by namespace URI
// and local name. Prefix is accepted as a fallback for documents whose
// attribute namespaces were not resolvable.
func attrValue(n *xmlquery.Node, uri, prefix, local string) *string {
	for i := range n.Attr {
		a := &n.Attr[i]
		if a.Name.Local != local {
			continue
		}
		if a.NamespaceURI == uri || a.Name.Space == prefix {
			return &a.Value
		}
	}
	return nil
}

// gmlID returns the feature element's gml:id attribute, or nil when absent.
func gmlID(n *xmlquery.Node) *string {
	return attrValue(n, gmlNS, "gml", "id")
}

// findAttr locates a child element by relative path and reads a namespaced
// attribute off it; nil when either the element or the attribute is absent.
func findAttr(el *xmlquery.Node, expr string, ns map[string]string, attrURI, attrPrefix, attrLocal string) *string {
	node, err := findElement(el, expr, ns)
	if err != nil {
		zap.L().Warn("nas: bad attribute query", zap.String("path", expr), zap.Error(err))
		return nil
	}
	if node == nil {
		return nil
	}
	return attrValue(node, attrURI, attrPrefix, attrLocal)
}

// findRef reads an xlink:href cross-reference off a named child element and
// strips the object-identifier URN prefix.
func findRef(el *xmlquery.Node, expr string, ns map[string]string) *string {
	href := findAttr(el, expr, ns, xlinkNS, "xlink", "href")
	if href == nil {
		return nil
	}
	id := TrimIDPrefix(*href)
	return &id
}

// memberPaths returns the primary and legacy container query for a feature
// tag. NAS exports wrap features in wfs:member; older schema versions use
// gml:featureMember instead.
func memberPaths(tag string) (primary, fallback string) {
	primary = "//ax:enthaelt/wfs:FeatureCollection/wfs:member"
	fallback = "//ax:enthaelt/wfs:FeatureCollection/gml:featureMember"
	if tag != "" {
		primary = fmt.Sprintf("%s/%s", primary, tag)
		fallback = fmt.Sprintf("%s/%s", fallback, tag)
	}
	return primary, fallback
}

// featureElements queries all feature elements of one type, trying the
// primary container tag and falling back to the legacy one. Zero matches
// under both paths is fatal: every one of the seven feature types is
// mandatory for this pipeline.
func featureElements(doc *xmlquery.Node, tag string, ns map[string]string) ([]*xmlquery.Node, error) {
	primary, fallback := memberPaths(tag)

	elements, err := findElements(doc, primary, ns)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		elements, err = findElements(doc, fallback, ns)
		if err != nil {
			return nil, err
		}
	}
	if len(elements) == 0 {
		return nil, eris.Wrapf(ErrNoFeatures, "no %s elements in document", tag)
	}
	return elements, nil
}

// Package gml decodes feature-layer geometries from GML/NAS documents into
// go-geom objects. It is deliberately scoped to the geometry shapes ALKIS
// parcel layers actually contain: points, polygons, surfaces with polygon
// patches, and multi-surfaces.
package gml

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

const gmlNS = "http://www.opengis.net/gml/3.2"

// Feature is one decoded layer member: the raw gml:id and its geometry.
type Feature struct {
	ID       string
	Geometry geom.T
}

// Collection holds the decoded features of one layer together with the
// display name of the coordinate reference system they are expressed in.
// CRS may be empty when the source document declares none.
type Collection struct {
	CRS      string
	Features []Feature
}

// DecodeLayer parses the document independently of any previously built
// tree and decodes every element whose local name equals the layer name.
// Members without a usable id or geometry are skipped with a diagnostic;
// a document without a single layer element is an error.
func DecodeLayer(data []byte, layer string) (*Collection, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, eris.Wrapf(err, "gml: parse document for layer %s", layer)
	}

	elements := xmlquery.Find(doc, fmt.Sprintf("//*[local-name()=%q]", layer))
	if len(elements) == 0 {
		return nil, eris.Errorf("gml: layer %s not present in document", layer)
	}

	coll := &Collection{Features: make([]Feature, 0, len(elements))}
	for _, el := range elements {
		id := featureID(el)
		if id == "" {
			zap.L().Warn("gml: layer member without gml:id, skipping", zap.String("layer", layer))
			continue
		}
		g, err := decodeGeometry(el)
		if err != nil {
			zap.L().Warn("gml: undecodable geometry, skipping",
				zap.String("layer", layer), zap.String("id", id), zap.Error(err))
			continue
		}
		coll.Features = append(coll.Features, Feature{ID: id, Geometry: g})
	}

	return coll, nil
}

func featureID(el *xmlquery.Node) string {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Name.Local == "id" && (a.NamespaceURI == gmlNS || a.Name.Space == "gml") {
			return a.Value
		}
	}
	return ""
}

// decodeGeometry finds the outermost geometry element of a feature and
// decodes it.
func decodeGeometry(el *xmlquery.Node) (geom.T, error) {
	node := xmlquery.FindOne(el,
		".//*[local-name()='Point' or local-name()='Polygon' or local-name()='Surface' or local-name()='MultiSurface']")
	if node == nil {
		return nil, eris.New("gml: no geometry element")
	}

	switch node.Data {
	case "Point":
		return decodePoint(node)
	case "Polygon":
		return decodePolygon(node)
	case "Surface":
		return decodeSurface(node)
	case "MultiSurface":
		return decodeMultiSurface(node)
	}
	return nil, eris.Errorf("gml: unsupported geometry %s", node.Data)
}

func decodePoint(el *xmlquery.Node) (geom.T, error) {
	pos := xmlquery.FindOne(el, "./*[local-name()='pos']")
	if pos == nil {
		return nil, eris.New("gml: point without pos")
	}
	coords, dim, err := parseTuple(pos.InnerText(), srsDimension(pos))
	if err != nil {
		return nil, err
	}
	return geom.NewPointFlat(layoutFor(dim), coords), nil
}

func decodePolygon(el *xmlquery.Node) (geom.T, error) {
	return polygonFromRings(el)
}

func decodeSurface(el *xmlquery.Node) (geom.T, error) {
	patches := xmlquery.Find(el, ".//*[local-name()='PolygonPatch']")
	if len(patches) == 0 {
		return nil, eris.New("gml: surface without polygon patches")
	}
	if len(patches) == 1 {
		return polygonFromRings(patches[0])
	}

	var mp *geom.MultiPolygon
	for _, patch := range patches {
		p, err := polygonFromRings(patch)
		if err != nil {
			return nil, err
		}
		if mp == nil {
			mp = geom.NewMultiPolygon(p.Layout())
		}
		if err := mp.Push(p); err != nil {
			return nil, eris.Wrap(err, "gml: push surface patch")
		}
	}
	return mp, nil
}

func decodeMultiSurface(el *xmlquery.Node) (geom.T, error) {
	members := xmlquery.Find(el, ".//*[local-name()='PolygonPatch' or local-name()='Polygon']")
	if len(members) == 0 {
		return nil, eris.New("gml: multisurface without members")
	}

	var mp *geom.MultiPolygon
	for _, member := range members {
		p, err := polygonFromRings(member)
		if err != nil {
			return nil, err
		}
		if mp == nil {
			mp = geom.NewMultiPolygon(p.Layout())
		}
		if err := mp.Push(p); err != nil {
			return nil, eris.Wrap(err, "gml: push multisurface member")
		}
	}
	return mp, nil
}

// polygonFromRings decodes a Polygon or PolygonPatch: one exterior linear
// ring, zero or more interior rings.
func polygonFromRings(el *xmlquery.Node) (*geom.Polygon, error) {
	exterior := xmlquery.FindOne(el, "./*[local-name()='exterior']//*[local-name()='LinearRing']")
	if exterior == nil {
		return nil, eris.New("gml: polygon without exterior ring")
	}

	flat, dim, err := ringCoords(exterior)
	if err != nil {
		return nil, err
	}

	layout := layoutFor(dim)
	poly := geom.NewPolygon(layout)
	if err := poly.Push(geom.NewLinearRingFlat(layout, flat)); err != nil {
		return nil, eris.Wrap(err, "gml: push exterior ring")
	}

	for _, interior := range xmlquery.Find(el, "./*[local-name()='interior']//*[local-name()='LinearRing']") {
		flat, ringDim, err := ringCoords(interior)
		if err != nil {
			return nil, err
		}
		if ringDim != dim {
			return nil, eris.Errorf("gml: mixed ring dimensions %d and %d", dim, ringDim)
		}
		if err := poly.Push(geom.NewLinearRingFlat(layout, flat)); err != nil {
			return nil, eris.Wrap(err, "gml: push interior ring")
		}
	}

	return poly, nil
}

// ringCoords flattens a LinearRing's coordinates, from either one posList
// or a sequence of pos elements.
func ringCoords(ring *xmlquery.Node) ([]float64, int, error) {
	if posList := xmlquery.FindOne(ring, "./*[local-name()='posList']"); posList != nil {
		return parseCoordList(posList.InnerText(), srsDimension(posList))
	}

	positions := xmlquery.Find(ring, "./*[local-name()='pos']")
	if len(positions) == 0 {
		return nil, 0, eris.New("gml: ring without coordinates")
	}

	var flat []float64
	dim := 0
	for _, pos := range positions {
		coords, d, err := parseTuple(pos.InnerText(), srsDimension(pos))
		if err != nil {
			return nil, 0, err
		}
		if dim == 0 {
			dim = d
		} else if dim != d {
			return nil, 0, eris.Errorf("gml: mixed pos dimensions %d and %d", dim, d)
		}
		flat = append(flat, coords...)
	}
	return flat, dim, nil
}

// srsDimension reads the srsDimension attribute off a node, walking up to
// the parent when absent there; 0 when undeclared.
func srsDimension(n *xmlquery.Node) int {
	for node := n; node != nil; node = node.Parent {
		if node.Type != xmlquery.ElementNode {
			break
		}
		for i := range node.Attr {
			if node.Attr[i].Name.Local == "srsDimension" {
				if d, err := strconv.Atoi(node.Attr[i].Value); err == nil {
					return d
				}
			}
		}
	}
	return 0
}

// parseTuple parses the single coordinate tuple of a gml:pos element.
func parseTuple(text string, declaredDim int) ([]float64, int, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 || len(fields) > 3 {
		return nil, 0, eris.Errorf("gml: position %q has %d coordinate(s)", text, len(fields))
	}
	if declaredDim != 0 && len(fields) != declaredDim {
		return nil, 0, eris.Errorf("gml: position %q does not match srsDimension %d", text, declaredDim)
	}
	coords := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, 0, eris.Wrapf(err, "gml: coordinate %q", f)
		}
		coords[i] = v
	}
	return coords, len(fields), nil
}

// parseCoordList parses a whitespace-separated posList into flat
// coordinates plus the dimension used.
func parseCoordList(text string, declaredDim int) ([]float64, int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, 0, eris.New("gml: empty posList")
	}

	dim := declaredDim
	if dim == 0 {
		switch {
		case len(fields)%2 == 0:
			dim = 2
		case len(fields)%3 == 0:
			dim = 3
		default:
			return nil, 0, eris.Errorf("gml: posList with %d values fits no dimension", len(fields))
		}
	}
	if len(fields)%dim != 0 {
		return nil, 0, eris.Errorf("gml: posList with %d values does not match dimension %d", len(fields), dim)
	}

	flat := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, 0, eris.Wrapf(err, "gml: coordinate %q", f)
		}
		flat[i] = v
	}
	return flat, dim, nil
}

func layoutFor(dim int) geom.Layout {
	if dim == 3 {
		return geom.XYZ
	}
	return geom.XY
}

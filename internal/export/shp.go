package export

import (
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/openkataster/nasextract/internal/nas"
)

// WriteParcelShapefile writes the parcel table as an ESRI shapefile with
// polygon geometry and the key scalar attributes. Parcels whose geometry is
// not polygonal are skipped with a diagnostic; shapefiles hold one shape
// type per file.
func WriteParcelShapefile(path string, parcels []nas.Parcel) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}

	writeErr := writeParcelRows(w, parcels)
	w.Close()
	if writeErr != nil {
		return writeErr
	}

	// go-shp writes the attribute table to <base>dbf while its reader (and
	// every other consumer) opens <base>.dbf; move it to the dotted name.
	base := strings.TrimSuffix(path, ".shp")
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return eris.Wrapf(err, "export: rename attribute table for %s", path)
	}
	return nil
}

func writeParcelRows(w *shp.Writer, parcels []nas.Parcel) error {
	if err := w.SetFields([]shp.Field{
		shp.StringField("FS_ID", 40),
		shp.StringField("KENNZEICHN", 24),
		shp.FloatField("FLAECHE", 16, 2),
		shp.StringField("BUCHUNG_ID", 40),
	}); err != nil {
		return eris.Wrap(err, "export: set shapefile fields")
	}

	row := 0
	var skipped int
	for _, p := range parcels {
		poly := toShpPolygon(p.Geometry)
		if poly == nil {
			skipped++
			continue
		}

		w.Write(poly)
		values := []any{p.ID, deref(p.Designator), derefFloat(p.OfficialArea), deref(p.BookingID)}
		for field, value := range values {
			if err := w.WriteAttribute(row, field, value); err != nil {
				return eris.Wrapf(err, "export: shapefile attribute %d of %s", field, p.ID)
			}
		}
		row++
	}

	if skipped > 0 {
		zap.L().Warn("export: skipped non-polygonal parcels", zap.Int("skipped", skipped))
	}
	return nil
}

// toShpPolygon converts polygonal go-geom geometry into a shapefile
// polygon; nil for anything else.
func toShpPolygon(g geom.T) *shp.Polygon {
	var rings [][]shp.Point

	switch t := g.(type) {
	case *geom.Polygon:
		rings = polygonRings(t)
	case *geom.MultiPolygon:
		for i := 0; i < t.NumPolygons(); i++ {
			rings = append(rings, polygonRings(t.Polygon(i))...)
		}
	default:
		return nil
	}

	if len(rings) == 0 {
		return nil
	}
	return (*shp.Polygon)(shp.NewPolyLine(rings))
}

func polygonRings(p *geom.Polygon) [][]shp.Point {
	rings := make([][]shp.Point, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		coords := p.LinearRing(i).Coords()
		ring := make([]shp.Point, len(coords))
		for j, c := range coords {
			ring[j] = shp.Point{X: c.X(), Y: c.Y()}
		}
		rings = append(rings, ring)
	}
	return rings
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

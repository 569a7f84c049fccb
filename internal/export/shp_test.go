package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/openkataster/nasextract/internal/nas"
)

func TestWriteParcelShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.shp")
	res := sampleResult()

	// A point-geometry parcel must be skipped, not written.
	res.Parcels = append(res.Parcels, nas.Parcel{
		ID:       "456",
		Geometry: geom.NewPointFlat(geom.XY, []float64{1, 2}),
	})

	require.NoError(t, WriteParcelShapefile(path, res.Parcels))

	// The attribute table must land next to the .shp under the dotted
	// name readers open, not go-shp's undotted writer default.
	base := strings.TrimSuffix(path, ".shp")
	_, err := os.Stat(base + ".dbf")
	require.NoError(t, err)
	_, err = os.Stat(base + "dbf")
	require.True(t, os.IsNotExist(err))

	r, err := shp.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	var shapes int
	for r.Next() {
		_, shape := r.Shape()
		assert.IsType(t, &shp.Polygon{}, shape)
		shapes++
	}
	assert.Equal(t, 1, shapes)

	fields := r.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, "FS_ID", fields[0].String())
	// go-shp NUL-pads dbf records and only space-trims on read.
	assert.Equal(t, "123", strings.Trim(r.ReadAttribute(0, 0), " \x00"))
}

func TestToShpPolygonMultiPolygon(t *testing.T) {
	mp := geom.NewMultiPolygon(geom.XY)
	for _, flat := range [][]float64{
		{0, 0, 1, 0, 1, 1, 0, 0},
		{5, 5, 6, 5, 6, 6, 5, 5},
	} {
		p := geom.NewPolygon(geom.XY)
		require.NoError(t, p.Push(geom.NewLinearRingFlat(geom.XY, flat)))
		require.NoError(t, mp.Push(p))
	}

	poly := toShpPolygon(mp)
	require.NotNil(t, poly)
	assert.Equal(t, int32(2), poly.NumParts)
}

func TestToShpPolygonRejectsNonPolygonal(t *testing.T) {
	assert.Nil(t, toShpPolygon(geom.NewPointFlat(geom.XY, []float64{1, 2})))
	assert.Nil(t, toShpPolygon(nil))
}

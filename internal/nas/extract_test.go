package nas

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func strptr(s string) *string { return &s }

func TestExtract(t *testing.T) {
	res, err := Extract([]byte(nasDocument))
	require.NoError(t, err)

	assert.Equal(t, "ETRS89 / UTM zone 33N", res.CRS)

	// The corrupt parcel 999 is sanitized away; only 123 survives the
	// geometry join.
	require.Len(t, res.Parcels, 1)
	p := res.Parcels[0]
	assert.Equal(t, "123", p.ID)
	assert.Equal(t, strptr("130010010012____"), p.Designator)
	require.NotNil(t, p.OfficialArea)
	assert.InDelta(t, 1234.56, *p.OfficialArea, 1e-9)
	assert.Equal(t, strptr("2001-01-01"), p.CreatedAt)
	assert.Equal(t, strptr("bs1"), p.BookingID)
	assert.Equal(t, strptr("lage1"), p.LocationID)
	require.NotNil(t, p.LifecycleFrom)
	assert.Equal(t, time.Date(2024, 10, 27, 12, 34, 56, 0, time.UTC), *p.LifecycleFrom)
	require.IsType(t, &geom.Polygon{}, p.Geometry)
	assert.Equal(t, []float64{10, 20, 30, 20, 30, 40, 10, 20}, p.Geometry.FlatCoords())

	// The id-less person element is skipped.
	require.Len(t, res.Persons, 1)
	person := res.Persons[0]
	assert.Equal(t, "p1", person.ID)
	assert.Equal(t, strptr("Mustermann"), person.SurnameOrFirm)
	assert.Equal(t, strptr("Max"), person.GivenName)
	assert.Equal(t, strptr("Herr"), person.Salutation)
	assert.Equal(t, strptr("1970-05-01"), person.BirthDate)
	assert.Equal(t, strptr("a1"), person.AddressID)
	assert.Nil(t, person.AcademicTitle)

	require.Len(t, res.Districts, 1)
	d := res.Districts[0]
	assert.Equal(t, "bbz1", d.ID)
	assert.Equal(t, strptr("13001"), d.CombinedKey)
	assert.Equal(t, strptr("Teststadt"), d.Name)
	assert.Equal(t, strptr("13"), d.StateKey)
	assert.Equal(t, strptr("001"), d.DistrictKey)
	assert.Equal(t, strptr("13"), d.OfficeState)
	assert.Equal(t, strptr("0600"), d.OfficeKey)

	require.Len(t, res.Ledgers, 1)
	l := res.Ledgers[0]
	assert.Equal(t, "bb1", l.ID)
	assert.Equal(t, strptr("130001000010"), l.Designator)
	assert.Equal(t, strptr("13"), l.StateKey)
	assert.Equal(t, strptr("001"), l.DistrictKey)
	assert.Equal(t, strptr("13001"), l.CombinedKey)
	assert.Equal(t, strptr("1000"), l.SheetType)
	assert.Equal(t, strptr("00001"), l.Number)

	require.Len(t, res.Addresses, 1)
	a := res.Addresses[0]
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, strptr("Schwerin"), a.Locality)
	assert.Equal(t, strptr("19053"), a.PostalCode)
	assert.Equal(t, strptr("Lindenstr."), a.Street)
	assert.Equal(t, strptr("7a"), a.HouseNumber)
	assert.Equal(t, strptr("Altstadt"), a.DistrictPart)
	assert.Nil(t, a.Phone)

	require.Len(t, res.NameEntries, 2)
	nn1 := res.NameEntries[0]
	assert.Equal(t, "nn1", nn1.ID)
	assert.Equal(t, strptr("p1"), nn1.PersonID)
	assert.Equal(t, strptr("bb1"), nn1.LedgerID)
	assert.Equal(t, strptr("0001.00"), nn1.RunningNumber)
	assert.Equal(t, strptr("Neueintragung"), nn1.Occasion)
	assert.InDelta(t, 0.5, nn1.Share, 1e-9)
	// No anteil element defaults the share to a full ownership.
	assert.Equal(t, 1.0, res.NameEntries[1].Share)

	require.Len(t, res.BookingEntries, 1)
	b := res.BookingEntries[0]
	assert.Equal(t, "bs1", b.ID)
	assert.Equal(t, strptr("1100"), b.BookingType)
	assert.Equal(t, strptr("1"), b.RunningNumber)
	assert.Equal(t, strptr("bb1"), b.LedgerID)
}

func TestExtractMissingFeatureType(t *testing.T) {
	const data = `<ax:enthaelt xmlns:ax="http://www.adv-online.de/namespaces/adv/gid/7.1"
	                           xmlns:wfs="http://www.opengis.net/wfs/2.0"
	                           xmlns:gml="http://www.opengis.net/gml/3.2">
	  <wfs:FeatureCollection>
	    <wfs:member>
	      <ax:AX_Flurstueck gml:id="urn:adv:oid:123">
	        <ax:position><gml:Point><gml:pos>10 20</gml:pos></gml:Point></ax:position>
	      </ax:AX_Flurstueck>
	    </wfs:member>
	  </wfs:FeatureCollection>
	</ax:enthaelt>`

	_, err := Extract([]byte(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFeatures))
}

func nameEntryDoc(anteil string) string {
	return fmt.Sprintf(`<ax:enthaelt xmlns:ax="http://www.adv-online.de/namespaces/adv/gid/7.1"
	             xmlns:wfs="http://www.opengis.net/wfs/2.0"
	             xmlns:gml="http://www.opengis.net/gml/3.2"
	             xmlns:xlink="http://www.w3.org/1999/xlink">
	  <wfs:FeatureCollection>
	    <wfs:member>
	      <ax:AX_Namensnummer gml:id="urn:adv:oid:nn1">%s</ax:AX_Namensnummer>
	    </wfs:member>
	  </wfs:FeatureCollection>
	</ax:enthaelt>`, anteil)
}

func TestExtractNameEntriesShare(t *testing.T) {
	tests := []struct {
		name   string
		anteil string
		want   float64
	}{
		{"fraction", "<ax:anteil><ax:AX_Anteil><ax:zaehler>3</ax:zaehler><ax:nenner>4</ax:nenner></ax:AX_Anteil></ax:anteil>", 0.75},
		{"absent", "", 1.0},
		{"numerator only", "<ax:anteil><ax:AX_Anteil><ax:zaehler>3</ax:zaehler></ax:AX_Anteil></ax:anteil>", 1.0},
		{"unparseable", "<ax:anteil><ax:AX_Anteil><ax:zaehler>x</ax:zaehler><ax:nenner>y</ax:nenner></ax:AX_Anteil></ax:anteil>", 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, ns := parseFixture(t, nameEntryDoc(tc.anteil))
			entries, err := extractNameEntries(doc, ns)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.want, entries[0].Share)
		})
	}
}

func TestExtractNameEntriesZeroDenominator(t *testing.T) {
	doc, ns := parseFixture(t, nameEntryDoc(
		"<ax:anteil><ax:AX_Anteil><ax:zaehler>1</ax:zaehler><ax:nenner>0</ax:nenner></ax:AX_Anteil></ax:anteil>"))
	entries, err := extractNameEntries(doc, ns)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, math.IsInf(entries[0].Share, 1))
}

func TestExtractParcelsUnparseableArea(t *testing.T) {
	const data = `<ax:enthaelt xmlns:ax="http://www.adv-online.de/namespaces/adv/gid/7.1"
	             xmlns:wfs="http://www.opengis.net/wfs/2.0"
	             xmlns:gml="http://www.opengis.net/gml/3.2">
	  <wfs:FeatureCollection>
	    <wfs:member>
	      <ax:AX_Flurstueck gml:id="urn:adv:oid:123">
	        <ax:amtlicheFlaeche>viel</ax:amtlicheFlaeche>
	      </ax:AX_Flurstueck>
	    </wfs:member>
	  </wfs:FeatureCollection>
	</ax:enthaelt>`

	doc, ns := parseFixture(t, data)
	geometries := map[string]geom.T{"123": geom.NewPointFlat(geom.XY, []float64{10, 20})}

	parcels, err := extractParcels(doc, ns, geometries)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	// The row survives; only the defective field is dropped.
	assert.Nil(t, parcels[0].OfficialArea)
}

func TestExtractParcelsInnerJoinDropsGeometrylessRows(t *testing.T) {
	doc, ns := parseFixture(t, nasDocument)

	parcels, err := extractParcels(doc, ns, map[string]geom.T{})
	require.NoError(t, err)
	assert.Empty(t, parcels)
}

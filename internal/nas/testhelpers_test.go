package nas

import (
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"
)

// nasDocument is a minimal but complete NAS export: all seven feature
// types, an authoritative CRS declaration, one healthy parcel (id 123)
// and one with a malformed single-coordinate position (id 999).
const nasDocument = `<?xml version="1.0" encoding="UTF-8"?>
<ax:enthaelt xmlns:ax="http://www.adv-online.de/namespaces/adv/gid/7.1"
             xmlns:wfs="http://www.opengis.net/wfs/2.0"
             xmlns:gml="http://www.opengis.net/gml/3.2"
             xmlns:xlink="http://www.w3.org/1999/xlink">
  <ax:koordinatenangaben>
    <ax:AA_Koordinatenreferenzsystemangaben>
      <ax:standard>false</ax:standard>
      <ax:crs xlink:href="urn:adv:crs:ETRS89_UTM99"/>
    </ax:AA_Koordinatenreferenzsystemangaben>
    <ax:AA_Koordinatenreferenzsystemangaben>
      <ax:standard>true</ax:standard>
      <ax:crs xlink:href="urn:adv:crs:ETRS89_UTM33"/>
    </ax:AA_Koordinatenreferenzsystemangaben>
  </ax:koordinatenangaben>
  <wfs:FeatureCollection>
    <wfs:member>
      <ax:AX_Flurstueck gml:id="urn:adv:oid:123">
        <ax:lebenszeitintervall>
          <ax:AA_Lebenszeitintervall>
            <ax:beginnt>2024-10-27T12:34:56Z</ax:beginnt>
          </ax:AA_Lebenszeitintervall>
        </ax:lebenszeitintervall>
        <ax:flurstueckskennzeichen>130010010012____</ax:flurstueckskennzeichen>
        <ax:amtlicheFlaeche>1234.56</ax:amtlicheFlaeche>
        <ax:zeitpunktDerEntstehung>2001-01-01</ax:zeitpunktDerEntstehung>
        <ax:istGebucht xlink:href="urn:adv:oid:bs1"/>
        <ax:zeigtAuf xlink:href="urn:adv:oid:lage1"/>
        <ax:position>
          <gml:Surface>
            <gml:patches>
              <gml:PolygonPatch>
                <gml:exterior>
                  <gml:LinearRing>
                    <gml:posList srsDimension="2">10 20 30 20 30 40 10 20</gml:posList>
                  </gml:LinearRing>
                </gml:exterior>
              </gml:PolygonPatch>
            </gml:patches>
          </gml:Surface>
        </ax:position>
      </ax:AX_Flurstueck>
    </wfs:member>
    <wfs:member>
      <ax:AX_Flurstueck gml:id="urn:adv:oid:999">
        <ax:flurstueckskennzeichen>broken</ax:flurstueckskennzeichen>
        <ax:position>
          <gml:Point>
            <gml:pos>42</gml:pos>
          </gml:Point>
        </ax:position>
      </ax:AX_Flurstueck>
    </wfs:member>
    <wfs:member>
      <ax:AX_Person gml:id="urn:adv:oid:p1">
        <ax:nachnameOderFirma>Mustermann</ax:nachnameOderFirma>
        <ax:vorname>Max</ax:vorname>
        <ax:anrede>Herr</ax:anrede>
        <ax:geburtsdatum>1970-05-01</ax:geburtsdatum>
        <ax:hat xlink:href="urn:adv:oid:a1"/>
        <ax:lebenszeitintervall>
          <ax:AA_Lebenszeitintervall>
            <ax:beginnt>2020-01-01T00:00:00Z</ax:beginnt>
          </ax:AA_Lebenszeitintervall>
        </ax:lebenszeitintervall>
      </ax:AX_Person>
    </wfs:member>
    <wfs:member>
      <ax:AX_Person>
        <ax:nachnameOderFirma>Ohne Kennung</ax:nachnameOderFirma>
      </ax:AX_Person>
    </wfs:member>
    <wfs:member>
      <ax:AX_Buchungsblattbezirk gml:id="urn:adv:oid:bbz1">
        <ax:schluesselGesamt>13001</ax:schluesselGesamt>
        <ax:bezeichnung>Teststadt</ax:bezeichnung>
        <ax:schluessel>
          <ax:AX_Buchungsblattbezirk_Schluessel>
            <ax:land>13</ax:land>
            <ax:bezirk>001</ax:bezirk>
          </ax:AX_Buchungsblattbezirk_Schluessel>
        </ax:schluessel>
        <ax:gehoertZu>
          <ax:AX_Dienststelle_Schluessel>
            <ax:land>13</ax:land>
            <ax:stelle>0600</ax:stelle>
          </ax:AX_Dienststelle_Schluessel>
        </ax:gehoertZu>
      </ax:AX_Buchungsblattbezirk>
    </wfs:member>
    <wfs:member>
      <ax:AX_Buchungsblatt gml:id="urn:adv:oid:bb1">
        <ax:buchungsblattkennzeichen>130001000010</ax:buchungsblattkennzeichen>
        <ax:buchungsblattnummerMitBuchstabenerweiterung>00001</ax:buchungsblattnummerMitBuchstabenerweiterung>
        <ax:blattart>1000</ax:blattart>
        <ax:buchungsblattbezirk>
          <ax:AX_Buchungsblattbezirk_Schluessel>
            <ax:land>13</ax:land>
            <ax:bezirk>001</ax:bezirk>
          </ax:AX_Buchungsblattbezirk_Schluessel>
        </ax:buchungsblattbezirk>
      </ax:AX_Buchungsblatt>
    </wfs:member>
    <wfs:member>
      <ax:AX_Anschrift gml:id="urn:adv:oid:a1">
        <ax:ort_Post>Schwerin</ax:ort_Post>
        <ax:postleitzahlPostzustellung>19053</ax:postleitzahlPostzustellung>
        <ax:strasse>Lindenstr.</ax:strasse>
        <ax:hausnummer>7a</ax:hausnummer>
        <ax:ortsteil>Altstadt</ax:ortsteil>
      </ax:AX_Anschrift>
    </wfs:member>
    <wfs:member>
      <ax:AX_Namensnummer gml:id="urn:adv:oid:nn1">
        <ax:laufendeNummerNachDIN1421>0001.00</ax:laufendeNummerNachDIN1421>
        <ax:benennt xlink:href="urn:adv:oid:p1"/>
        <ax:istBestandteilVon xlink:href="urn:adv:oid:bb1"/>
        <ax:anlass xlink:title="Neueintragung"/>
        <ax:anteil>
          <ax:AX_Anteil>
            <ax:zaehler>1</ax:zaehler>
            <ax:nenner>2</ax:nenner>
          </ax:AX_Anteil>
        </ax:anteil>
      </ax:AX_Namensnummer>
    </wfs:member>
    <wfs:member>
      <ax:AX_Namensnummer gml:id="urn:adv:oid:nn2">
        <ax:benennt xlink:href="urn:adv:oid:p1"/>
        <ax:istBestandteilVon xlink:href="urn:adv:oid:bb1"/>
      </ax:AX_Namensnummer>
    </wfs:member>
    <wfs:member>
      <ax:AX_Buchungsstelle gml:id="urn:adv:oid:bs1">
        <ax:buchungsart>1100</ax:buchungsart>
        <ax:laufendeNummer>1</ax:laufendeNummer>
        <ax:istBestandteilVon xlink:href="urn:adv:oid:bb1"/>
      </ax:AX_Buchungsstelle>
    </wfs:member>
  </wfs:FeatureCollection>
</ax:enthaelt>`

// parseFixture resolves namespaces and parses a document for extractor
// tests.
func parseFixture(t *testing.T, data string) (*xmlquery.Node, map[string]string) {
	t.Helper()
	ns := ResolveNamespaces([]byte(data))
	doc, err := ParseDocument([]byte(data))
	require.NoError(t, err)
	return doc, ns
}

package nas

import (
	"time"

	"github.com/twpayne/go-geom"
)

// Row types for the seven extracted tables. Optional source fields are
// pointers and stay nil when the document omits them; the only defaulted
// field is NameEntry.Share (1.0 when no numerator/denominator is present).
// Identifiers and cross-references carry the urn:adv:oid: prefix already
// stripped. Tables do not enforce referential integrity against each other;
// dangling references are legal in partial cadastral extracts.

// Parcel is one AX_Flurstueck row including its decoded geometry.
type Parcel struct {
	ID            string
	Designator    *string    // flurstueckskennzeichen
	OfficialArea  *float64   // amtlicheFlaeche
	CreatedAt     *string    // zeitpunktDerEntstehung, kept verbatim
	LifecycleFrom *time.Time // Lebenszeitintervall beginnt
	BookingID     *string    // istGebucht -> AX_Buchungsstelle
	LocationID    *string    // zeigtAuf -> AX_LagebezeichnungOhneHausnummer
	Geometry      geom.T
}

// Person is one AX_Person row.
type Person struct {
	ID            string
	SurnameOrFirm *string // nachnameOderFirma
	GivenName     *string // vorname
	Salutation    *string // anrede
	NameComponent *string // namensbestandteil
	AcademicTitle *string // akademischerGrad
	BirthName     *string // geburtsname
	BirthDate     *string // geburtsdatum
	AddressID     *string // hat -> AX_Anschrift
	LifecycleFrom *time.Time
	Occasion      *string // anlass
}

// LedgerDistrict is one AX_Buchungsblattbezirk row.
type LedgerDistrict struct {
	ID            string
	CombinedKey   *string // schluesselGesamt
	Name          *string // bezeichnung
	StateKey      *string // schluessel .../land
	DistrictKey   *string // schluessel .../bezirk
	OfficeState   *string // gehoertZu .../land
	OfficeKey     *string // gehoertZu .../stelle
	LifecycleFrom *time.Time
	Occasion      *string
}

// Ledger is one AX_Buchungsblatt row. CombinedKey is state+district when
// both sub-keys are present.
type Ledger struct {
	ID            string
	Designator    *string // buchungsblattkennzeichen
	StateKey      *string
	DistrictKey   *string
	CombinedKey   *string
	SheetType     *string // blattart
	Number        *string // buchungsblattnummerMitBuchstabenerweiterung
	LifecycleFrom *time.Time
	Occasion      *string
}

// Address is one AX_Anschrift row.
type Address struct {
	ID            string
	Locality      *string // ort_Post
	PostalCode    *string // postleitzahlPostzustellung
	Street        *string // strasse
	HouseNumber   *string // hausnummer
	DistrictPart  *string // ortsteil
	LifecycleFrom *time.Time
	Occasion      *string
	Phone         *string // TEL
	MoreAddresses *string // weitereAdressen
}

// NameEntry is one AX_Namensnummer row linking a person to a ledger with an
// ownership share.
type NameEntry struct {
	ID             string
	PersonID       *string // benennt -> AX_Person
	RunningNumber  *string // laufendeNummerNachDIN1421
	LedgerID       *string // istBestandteilVon -> AX_Buchungsblatt
	Occasion       *string // anlass, via xlink:title
	CommunityType  *string // artDerRechtsgemeinschaft
	RelationshipID *string // bestehtAusRechtsverhaeltnissenZu
	Share          float64 // zaehler/nenner, 1.0 when absent
}

// BookingEntry is one AX_Buchungsstelle row.
type BookingEntry struct {
	ID            string
	BookingType   *string // buchungsart
	RunningNumber *string // laufendeNummer
	LedgerID      *string // istBestandteilVon -> AX_Buchungsblatt
}

// Result is the immutable outcome of one document extraction: the document
// CRS display name and the seven tables, each in document order.
type Result struct {
	CRS            string
	Parcels        []Parcel
	Persons        []Person
	Districts      []LedgerDistrict
	Ledgers        []Ledger
	Addresses      []Address
	NameEntries    []NameEntry
	BookingEntries []BookingEntry
}

// Column orders for serialization sinks. Names follow the source schema's
// vocabulary so exported tables line up with existing ALKIS tooling.
var (
	ParcelColumns = []string{
		"ax_flurstueck_id", "flurstueckskennzeichen", "amtliche_flaeche",
		"ax_buchungsstelle_id", "ax_lagebezeichnung_ohne_hausnummer_id",
		"zeitpunkt_der_entstehung", "aa_lebenszeitintervall_beginnt", "geometry",
	}
	PersonColumns = []string{
		"ax_person_id", "nachname_oder_firma", "vorname", "anrede",
		"namensbestandteil", "akademischer_grad", "geburtsname", "geburtsdatum",
		"ax_anschrift_id", "aa_lebenszeitintervall_beginnt", "anlass",
	}
	LedgerDistrictColumns = []string{
		"ax_buchungsblattbezirk_id", "schluessel_gesamt", "bbz_bezeichnung",
		"ax_buchungsblattbezirk_schluessel_land", "ax_buchungsblattbezirk_schluessel_bezirk",
		"ax_dienststelle_schluessel_land", "ax_dienststelle_schluessel_stelle",
		"aa_lebenszeitintervall_beginnt", "anlass",
	}
	LedgerColumns = []string{
		"ax_buchungsblatt_id", "buchungsblattkennzeichen", "land", "bezirk",
		"schluessel_gesamt", "blattart", "buchungsblattnummer_mit_buchstabenerweiterung",
		"aa_lebenszeitintervall_beginnt", "anlass",
	}
	AddressColumns = []string{
		"ax_anschrift_id", "ort_post", "postleitzahl_postzustellung", "strasse",
		"hausnummer", "ortsteil", "aa_lebenszeitintervall_beginnt", "anlass",
		"tel", "weitere_adressen",
	}
	NameEntryColumns = []string{
		"ax_namensnummer_id", "ax_person_id", "laufende_nummer",
		"ax_buchungsblatt_id", "anlass", "art_der_rechtsgemeinschaft",
		"besteht_aus_rechtsverhaeltnissen_zu", "anteil",
	}
	BookingEntryColumns = []string{
		"ax_buchungsstelle_id", "buchungsart", "laufende_nummer", "ax_buchungsblatt_id",
	}
)

// Row flattens a parcel into ParcelColumns order.
func (p Parcel) Row() []any {
	return []any{p.ID, p.Designator, p.OfficialArea, p.BookingID, p.LocationID,
		p.CreatedAt, p.LifecycleFrom, p.Geometry}
}

// Row flattens a person into PersonColumns order.
func (p Person) Row() []any {
	return []any{p.ID, p.SurnameOrFirm, p.GivenName, p.Salutation, p.NameComponent,
		p.AcademicTitle, p.BirthName, p.BirthDate, p.AddressID, p.LifecycleFrom, p.Occasion}
}

// Row flattens a ledger district into LedgerDistrictColumns order.
func (d LedgerDistrict) Row() []any {
	return []any{d.ID, d.CombinedKey, d.Name, d.StateKey, d.DistrictKey,
		d.OfficeState, d.OfficeKey, d.LifecycleFrom, d.Occasion}
}

// Row flattens a ledger into LedgerColumns order.
func (l Ledger) Row() []any {
	return []any{l.ID, l.Designator, l.StateKey, l.DistrictKey, l.CombinedKey,
		l.SheetType, l.Number, l.LifecycleFrom, l.Occasion}
}

// Row flattens an address into AddressColumns order.
func (a Address) Row() []any {
	return []any{a.ID, a.Locality, a.PostalCode, a.Street, a.HouseNumber,
		a.DistrictPart, a.LifecycleFrom, a.Occasion, a.Phone, a.MoreAddresses}
}

// Row flattens a name entry into NameEntryColumns order.
func (n NameEntry) Row() []any {
	return []any{n.ID, n.PersonID, n.RunningNumber, n.LedgerID, n.Occasion,
		n.CommunityType, n.RelationshipID, n.Share}
}

// Row flattens a booking entry into BookingEntryColumns order.
func (b BookingEntry) Row() []any {
	return []any{b.ID, b.BookingType, b.RunningNumber, b.LedgerID}
}

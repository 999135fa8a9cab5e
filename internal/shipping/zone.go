// Package shipping resolves a customer's department to a shipping zone and
// prices the (zone, modality) pair against the rate table.
package shipping

import (
	"strings"
	"unicode"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Zone string

const (
	ZoneLimaLocal      Zone = "LIMA_LOCAL"
	ZoneLimaProvincias Zone = "LIMA_PROVINCIAS"
	ZoneCostaNacional  Zone = "COSTA_NACIONAL"
	ZoneSierraSelva    Zone = "SIERRA_SELVA"
	ZoneZonasRemotas   Zone = "ZONAS_REMOTAS"
)

// Zones lists every zone in tariff order.
var Zones = []Zone{
	ZoneLimaLocal,
	ZoneLimaProvincias,
	ZoneCostaNacional,
	ZoneSierraSelva,
	ZoneZonasRemotas,
}

type Modality string

const (
	ModalityDomicilio Modality = "DOMICILIO"
	ModalityAgencia   Modality = "AGENCIA"
)

var Modalities = []Modality{ModalityDomicilio, ModalityAgencia}

var zoneLabels = map[Zone]string{
	ZoneLimaLocal:      "Lima Metropolitana y Callao",
	ZoneLimaProvincias: "Lima Provincias",
	ZoneCostaNacional:  "Costa Nacional",
	ZoneSierraSelva:    "Sierra y Selva",
	ZoneZonasRemotas:   "Zonas Remotas",
}

var modalityLabels = map[Modality]string{
	ModalityDomicilio: "Envío a domicilio",
	ModalityAgencia:   "Recojo en agencia",
}

func (z Zone) Label() string {
	if l, ok := zoneLabels[z]; ok {
		return l
	}
	return string(z)
}

func (z Zone) Valid() bool {
	_, ok := zoneLabels[z]
	return ok
}

func (m Modality) Label() string {
	if l, ok := modalityLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Modality) Valid() bool {
	_, ok := modalityLabels[m]
	return ok
}

func ParseZone(s string) (Zone, error) {
	z := Zone(strings.ToUpper(strings.TrimSpace(s)))
	if !z.Valid() {
		return "", apperr.NewValidation("shippingZone", "unknown zone "+strings.TrimSpace(s))
	}
	return z, nil
}

func ParseModality(s string) (Modality, error) {
	m := Modality(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", apperr.NewValidation("shippingModality", "must be DOMICILIO or AGENCIA")
	}
	return m, nil
}

var departmentZones = map[string]Zone{
	"LIMA":   ZoneLimaLocal,
	"CALLAO": ZoneLimaLocal,

	"LIMA PROVINCIAS": ZoneLimaProvincias,

	"TUMBES":      ZoneCostaNacional,
	"PIURA":       ZoneCostaNacional,
	"LAMBAYEQUE":  ZoneCostaNacional,
	"LA LIBERTAD": ZoneCostaNacional,
	"ANCASH":      ZoneCostaNacional,
	"ICA":         ZoneCostaNacional,
	"AREQUIPA":    ZoneCostaNacional,
	"MOQUEGUA":    ZoneCostaNacional,
	"TACNA":       ZoneCostaNacional,

	"CAJAMARCA":    ZoneSierraSelva,
	"HUANUCO":      ZoneSierraSelva,
	"PASCO":        ZoneSierraSelva,
	"JUNIN":        ZoneSierraSelva,
	"HUANCAVELICA": ZoneSierraSelva,
	"AYACUCHO":     ZoneSierraSelva,
	"APURIMAC":     ZoneSierraSelva,
	"CUSCO":        ZoneSierraSelva,
	"PUNO":         ZoneSierraSelva,
	"SAN MARTIN":   ZoneSierraSelva,

	"AMAZONAS":      ZoneZonasRemotas,
	"LORETO":        ZoneZonasRemotas,
	"UCAYALI":       ZoneZonasRemotas,
	"MADRE DE DIOS": ZoneZonasRemotas,
}

// ResolveZone never fails: anything not in the table, including empty or
// malformed input, lands in ZONAS_REMOTAS.
func ResolveZone(department string) Zone {
	if z, ok := departmentZones[Normalize(department)]; ok {
		return z
	}
	return ZoneZonasRemotas
}

// ResolveZoneFor refines department LIMA by province: only the province of
// Lima itself is LIMA_LOCAL, the rest of the department ships as provinces.
func ResolveZoneFor(department, province string) Zone {
	zone := ResolveZone(department)
	if Normalize(department) != "LIMA" {
		return zone
	}
	p := Normalize(province)
	if p == "" || p == "LIMA" {
		return zone
	}
	return ZoneLimaProvincias
}

// Normalize upper-cases s, strips diacritics and collapses whitespace so that
// "  Junín " and "JUNIN" compare equal. Invalid input normalizes to "".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	upper := cases.Upper(language.Spanish).String(stripped)
	return strings.Join(strings.Fields(upper), " ")
}

package kvk

import "maps"

// Registry field names.
const (
	fieldKvkNumber           = "kvkNummer"
	fieldEstablishmentNumber = "vestigingsnummer"
	fieldName                = "naam"
	fieldWebsites            = "websites"

	// Search detail records carry a single raw address list under "adres",
	// base profiles a list under "adressen".
	fieldSearchAddresses  = "adres"
	fieldProfileAddresses = "adressen"
)

// tradeNameFields lists the profile name fields in order of preference.
var tradeNameFields = []string{"eersteHandelsnaam", "handelsnaam", fieldName}

// addressFields are the keys kept by formatAddresses.
var addressFields = []string{"type", "straatnaam", "huisnummer", "postcode", "plaats", "land"}

// Company is one registered business entity.
//
// KvkNumber is never empty in a Company returned by the client. All other
// fields are optional: empty strings and nil slices mean the registry did
// not provide them.
type Company struct {
	KvkNumber           string    `json:"kvkNumber"`                     // 8-digit KVK number
	EstablishmentNumber string    `json:"establishmentNumber,omitempty"` // Vestigingsnummer of a branch (may be empty)
	TradeName           string    `json:"tradeName,omitempty"`           // Display name (may be empty)
	Addresses           []Address `json:"addresses,omitempty"`           // Postal and visiting addresses (may be nil)
	Websites            []string  `json:"websites,omitempty"`            // Website URLs (may be nil)
}

// Address is a postal address associated with a company. Every typed field
// is optional.
//
// Fields holds the registry object the address was built from. For search
// results that is the raw "adres" fragment with every key the registry sent;
// for base profiles it is the formatted six-field projection.
type Address struct {
	Type        string `json:"type,omitempty"`        // e.g. "bezoekadres" or "postadres"
	Street      string `json:"street,omitempty"`      // straatnaam
	HouseNumber string `json:"houseNumber,omitempty"` // huisnummer
	PostalCode  string `json:"postalCode,omitempty"`  // postcode
	City        string `json:"city,omitempty"`        // plaats
	Country     string `json:"country,omitempty"`     // land
	Fields      Record `json:"-"`
}

// NewCompany builds a Company from registry values. Each address fragment
// is kept as given in [Address.Fields] and its known keys are copied to the
// typed fields; a nil addresses slice leaves Addresses nil.
func NewCompany(kvkNumber, establishmentNumber, tradeName string, addresses []Record, websites []string) Company {
	c := Company{
		KvkNumber:           kvkNumber,
		EstablishmentNumber: establishmentNumber,
		TradeName:           tradeName,
		Websites:            websites,
	}
	if addresses != nil {
		c.Addresses = make([]Address, 0, len(addresses))
		for _, a := range addresses {
			c.Addresses = append(c.Addresses, newAddress(a))
		}
	}
	return c
}

func newAddress(r Record) Address {
	a := Address{Fields: maps.Clone(r)}
	if a.Fields == nil {
		a.Fields = Record{}
	}
	a.Type, _ = r.String("type")
	a.Street, _ = r.String("straatnaam")
	a.HouseNumber, _ = r.String("huisnummer")
	a.PostalCode, _ = r.String("postcode")
	a.City, _ = r.String("plaats")
	a.Country, _ = r.String("land")
	return a
}

// Map returns the company as a plain map with the keys kvkNumber,
// establishmentNumber, tradeName, addresses and websites. Absent values are
// nil.
func (c Company) Map() map[string]any {
	m := map[string]any{
		"kvkNumber":           c.KvkNumber,
		"establishmentNumber": nilIfEmpty(c.EstablishmentNumber),
		"tradeName":           nilIfEmpty(c.TradeName),
		"addresses":           nil,
		"websites":            nil,
	}
	if c.Addresses != nil {
		addrs := make([]map[string]any, 0, len(c.Addresses))
		for _, a := range c.Addresses {
			addrs = append(addrs, a.Map())
		}
		m["addresses"] = addrs
	}
	if c.Websites != nil {
		m["websites"] = c.Websites
	}
	return m
}

// Map returns the address as a plain map keyed by the registry field names.
// When Fields is set it is returned unchanged, so search addresses keep
// keys the typed fields do not cover.
func (a Address) Map() map[string]any {
	if a.Fields != nil {
		return maps.Clone(a.Fields)
	}
	return map[string]any{
		"type":       nilIfEmpty(a.Type),
		"straatnaam": nilIfEmpty(a.Street),
		"huisnummer": nilIfEmpty(a.HouseNumber),
		"postcode":   nilIfEmpty(a.PostalCode),
		"plaats":     nilIfEmpty(a.City),
		"land":       nilIfEmpty(a.Country),
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// companyFromSearch builds a Company from a merged search detail record.
// The "adres" fragments skip formatAddresses and are kept whole.
func companyFromSearch(r Record) Company {
	kvkNumber, _ := r.String(fieldKvkNumber)
	establishment, _ := r.String(fieldEstablishmentNumber)
	name, _ := r.String(fieldName)
	addresses, _ := r.Records(fieldSearchAddresses)
	return NewCompany(kvkNumber, establishment, name, addresses, r.Strings(fieldWebsites))
}

// companyFromProfile builds a Company from a base profile record, resolving
// the trade name by preference and formatting the address list first.
func companyFromProfile(r Record) Company {
	kvkNumber, _ := r.String(fieldKvkNumber)
	establishment, _ := r.String(fieldEstablishmentNumber)
	name, _ := r.First(tradeNameFields...)
	addresses, _ := r.Records(fieldProfileAddresses)
	return NewCompany(kvkNumber, establishment, name, formatAddresses(addresses), r.Strings(fieldWebsites))
}

// formatAddresses projects each raw address onto the six known address
// fields, dropping everything else. Missing fields stay absent.
func formatAddresses(raw []Record) []Record {
	if raw == nil {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		f := make(Record, len(addressFields))
		for _, k := range addressFields {
			f[k] = r[k]
		}
		out = append(out, f)
	}
	return out
}

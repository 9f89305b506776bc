// internal/modules/dnsenum/records.go
package dnsenum

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/Kuraiyume/Akari/internal/core"
)

// RecordType is one of the record types akari knows how to query. The set is
// closed: unknown names are rejected when the configuration is validated,
// never at query time.
type RecordType struct {
	Name  string
	Qtype uint16
}

var supportedTypes = []RecordType{
	{"A", dns.TypeA},
	{"AAAA", dns.TypeAAAA},
	{"CNAME", dns.TypeCNAME},
	{"MX", dns.TypeMX},
	{"NS", dns.TypeNS},
	{"SOA", dns.TypeSOA},
	{"TXT", dns.TypeTXT},
	{"CAA", dns.TypeCAA},
	{"PTR", dns.TypePTR},
	{"SRV", dns.TypeSRV},
	{"NAPTR", dns.TypeNAPTR},
	{"DS", dns.TypeDS},
	{"DNSKEY", dns.TypeDNSKEY},
	{"TLSA", dns.TypeTLSA},
	{"LOC", dns.TypeLOC},
}

// DefaultTypeNames returns the full supported record type set, the default
// when no types are requested.
func DefaultTypeNames() []string {
	names := make([]string, len(supportedTypes))
	for i, t := range supportedTypes {
		names[i] = t.Name
	}
	return names
}

// ParseTypes maps record type names to RecordTypes, preserving the requested
// order. Names are case-insensitive. An unknown name yields a ConfigError.
func ParseTypes(names []string) ([]RecordType, error) {
	types := make([]RecordType, 0, len(names))
	for _, name := range names {
		rt, ok := lookupType(strings.ToUpper(strings.TrimSpace(name)))
		if !ok {
			return nil, &core.ConfigError{
				Field:  "record_types",
				Reason: fmt.Sprintf("unsupported record type %q", name),
			}
		}
		types = append(types, rt)
	}
	return types, nil
}

func lookupType(name string) (RecordType, bool) {
	for _, t := range supportedTypes {
		if t.Name == name {
			return t, true
		}
	}
	return RecordType{}, false
}

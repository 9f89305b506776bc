// internal/reporting/report.go
package reporting

import (
	"net"

	"github.com/Kuraiyume/Akari/internal/modules/dnsenum"
	"github.com/Kuraiyume/Akari/internal/modules/geolocation"
)

// Entry is the per-domain report: all query results in requested-type order
// plus geolocation data for the domain's A-record IPs in first-seen order.
// Built once per domain after all queries and enrichment complete, consumed
// once by the formatter.
type Entry struct {
	Domain  string
	Records []dnsenum.QueryResult
	Geo     []geolocation.GeoInfo
}

// Counts tallies the domain's answered, empty and failed record types.
func (e Entry) Counts() (answered, empty, failed int) {
	for _, r := range e.Records {
		switch {
		case r.Failed():
			failed++
		case len(r.Values) == 0:
			empty++
		default:
			answered++
		}
	}
	return
}

// Build groups query results into one Entry per domain, preserving the
// configured domain order, and attaches geolocation data for each domain's
// A-record IPs. Enrichment only adds metadata; the query results themselves
// are carried through untouched.
func Build(domains []string, results []dnsenum.QueryResult, geo map[string]*geolocation.GeoInfo) []Entry {
	byDomain := make(map[string][]dnsenum.QueryResult, len(domains))
	for _, r := range results {
		byDomain[r.Domain] = append(byDomain[r.Domain], r)
	}

	entries := make([]Entry, 0, len(domains))
	for _, domain := range domains {
		entry := Entry{Domain: domain, Records: byDomain[domain]}
		for _, ip := range CollectIPv4s(entry.Records) {
			if info, ok := geo[ip]; ok {
				entry.Geo = append(entry.Geo, *info)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// CollectIPv4s returns the distinct IPv4 addresses found in A-record
// results, in first-seen order.
func CollectIPv4s(results []dnsenum.QueryResult) []string {
	seen := make(map[string]struct{})
	var ips []string
	for _, r := range results {
		if r.Type != "A" {
			continue
		}
		for _, v := range r.Values {
			ip := net.ParseIP(v)
			if ip == nil || ip.To4() == nil {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			ips = append(ips, v)
		}
	}
	return ips
}

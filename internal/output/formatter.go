// internal/output/formatter.go
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kuraiyume/Akari/internal/core"
	"github.com/Kuraiyume/Akari/internal/core/logger"
	"github.com/Kuraiyume/Akari/internal/modules/geolocation"
	"github.com/Kuraiyume/Akari/internal/reporting"
)

// CSVHeader is the column set of the csv output format. Geolocation columns
// are populated only for rows whose value is an IP with known GeoInfo.
var CSVHeader = []string{
	"domain", "record_type", "value", "error",
	"city", "region", "country", "org", "postal", "timezone", "loc",
}

// Format renders the report in the selected format. It is a pure transform:
// no file or network I/O happens here.
func Format(entries []reporting.Entry, outputFormat string) (string, error) {
	switch outputFormat {
	case "json":
		return formatJSON(entries)
	case "csv":
		return formatCSV(entries)
	case "text":
		return formatText(entries), nil
	default:
		logger.GetLogger().Errorf("Unsupported output format: %s", outputFormat)
		return "", core.ErrOutputFormat
	}
}

type jsonRecord struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
	Error  string   `json:"error,omitempty"`
}

type jsonEntry struct {
	Domain      string                `json:"domain"`
	Records     []jsonRecord          `json:"records"`
	Geolocation []geolocation.GeoInfo `json:"geolocation,omitempty"`
}

// formatJSON emits an ordered array of domain objects: domains in configured
// order, records in requested-type order, geolocation in first-seen IP
// order. Ordered arrays keep the output deterministic and reproducible.
func formatJSON(entries []reporting.Entry) (string, error) {
	out := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		je := jsonEntry{Domain: e.Domain, Records: make([]jsonRecord, 0, len(e.Records))}
		for _, r := range e.Records {
			je.Records = append(je.Records, jsonRecord{Type: r.Type, Values: r.Values, Error: r.Error})
		}
		je.Geolocation = e.Geo
		out = append(out, je)
	}

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatCSV emits one row per (domain, record_type, value) triple. A record
// with no values still contributes a single row so failed and empty pairs
// stay visible.
func formatCSV(entries []reporting.Entry) (string, error) {
	var b strings.Builder
	writer := csv.NewWriter(&b)
	if err := writer.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range entries {
		geoByIP := make(map[string]geolocation.GeoInfo, len(e.Geo))
		for _, g := range e.Geo {
			geoByIP[g.IP] = g
		}

		for _, r := range e.Records {
			values := r.Values
			if len(values) == 0 {
				values = []string{""}
			}
			for _, v := range values {
				row := []string{e.Domain, r.Type, v, r.Error, "", "", "", "", "", "", ""}
				if g, ok := geoByIP[v]; ok {
					row[4], row[5], row[6], row[7] = g.City, g.Region, g.Country, g.Org
					row[8], row[9], row[10] = g.Postal, g.Timezone, g.Loc
				}
				if err := writer.Write(row); err != nil {
					return "", fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}

	writer.Flush()
	return b.String(), writer.Error()
}

// formatText renders the human-readable listing, grouped by domain then by
// record type, with a geolocation block after each domain that has one.
func formatText(entries []reporting.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "=== %s ===\n", e.Domain)
		for _, r := range e.Records {
			switch {
			case r.Failed():
				fmt.Fprintf(&b, "%s: error: %s\n", r.Type, r.Error)
			case r.NXDomain:
				fmt.Fprintf(&b, "%s: domain does not exist\n", r.Type)
			case len(r.Values) == 0:
				fmt.Fprintf(&b, "%s: no records found\n", r.Type)
			default:
				for _, v := range r.Values {
					fmt.Fprintf(&b, "%s: %s\n", r.Type, v)
				}
			}
		}

		if len(e.Geo) > 0 {
			b.WriteString("\nGeolocation:\n")
			for _, g := range e.Geo {
				fmt.Fprintf(&b, "%s: %s\n", g.IP, geoPlace(g))
				if g.Org != "" {
					fmt.Fprintf(&b, "  org: %s\n", g.Org)
				}
				if g.Postal != "" {
					fmt.Fprintf(&b, "  postal: %s\n", g.Postal)
				}
				if g.Timezone != "" {
					fmt.Fprintf(&b, "  timezone: %s\n", g.Timezone)
				}
				if g.Loc != "" {
					fmt.Fprintf(&b, "  coordinates: %s\n", g.Loc)
				}
			}
		}
	}
	return b.String()
}

func geoPlace(g geolocation.GeoInfo) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{g.City, g.Region, g.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "location unknown"
	}
	return strings.Join(parts, ", ")
}

package geolocation

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const ipinfoBody = `{
	"ip": "93.184.216.34",
	"city": "Norwell",
	"region": "Massachusetts",
	"country": "US",
	"org": "AS15133 Edgecast Inc.",
	"postal": "02061",
	"timezone": "America/New_York",
	"loc": "42.1596,-70.8217"
}`

func TestClient_Lookup(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		fmt.Fprint(w, ipinfoBody)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	info, err := c.Lookup("93.184.216.34")
	if err != nil {
		t.Fatalf("Lookup returned an error: %v", err)
	}
	if gotPath != "/93.184.216.34/json" {
		t.Errorf("Expected path /93.184.216.34/json, got %s", gotPath)
	}
	if gotToken != "secret" {
		t.Errorf("Expected token query param, got %q", gotToken)
	}
	if info.City != "Norwell" || info.Country != "US" {
		t.Errorf("Unexpected fields: %+v", info)
	}
	if info.Loc != "42.1596,-70.8217" {
		t.Errorf("Expected coordinates, got %q", info.Loc)
	}
}

func TestClient_LookupAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("bad")
	c.BaseURL = srv.URL

	if _, err := c.Lookup("1.2.3.4"); err == nil {
		t.Fatal("Expected an error for a 403 response, got nil")
	}
}

func TestClient_EnrichSkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/93.184.216.34/") {
			fmt.Fprint(w, ipinfoBody)
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("secret")
	c.BaseURL = srv.URL

	found := c.Enrich([]string{"93.184.216.34", "10.0.0.1"})
	if len(found) != 1 {
		t.Fatalf("Expected 1 enriched IP, got %d", len(found))
	}
	if _, ok := found["93.184.216.34"]; !ok {
		t.Error("Expected the successful IP to be present")
	}
	if _, ok := found["10.0.0.1"]; ok {
		t.Error("Failed lookups must be omitted, not recorded")
	}
}

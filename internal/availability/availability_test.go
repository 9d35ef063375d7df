package availability

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmaher/campcaster/internal/site"
)

func TestBookingURL(t *testing.T) {
	tests := []struct {
		name      string
		sourceURL string
		expected  string
		ok        bool
	}{
		{
			name:      "campground slug",
			sourceURL: "https://www.parks.vic.gov.au/where-to-stay/tidal-river-campground/",
			expected:  "https://bookings.parks.vic.gov.au/tidal-river-campground",
			ok:        true,
		},
		{
			name:      "generic camping slug",
			sourceURL: "https://www.parks.vic.gov.au/camping",
			ok:        false,
		},
		{
			name:      "empty source",
			sourceURL: "",
			ok:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ok := BookingURL(tt.sourceURL)
			if ok != tt.ok {
				t.Fatalf("ok = %v, expected %v", ok, tt.ok)
			}
			if ok && url != tt.expected {
				t.Errorf("BookingURL = %q, expected %q", url, tt.expected)
			}
		})
	}
}

func TestExtractIDs(t *testing.T) {
	html := `<html><head>
<script>var config = {"operatorId": 4821, "other": 1};</script>
</head><body>
<script>window.widget = {"controlId" : 77};</script>
</body></html>`

	operatorID, controlID := ExtractIDs(html)
	if operatorID != "4821" {
		t.Errorf("operatorID = %q, expected 4821", operatorID)
	}
	if controlID != "77" {
		t.Errorf("controlID = %q, expected 77", controlID)
	}
}

func TestExtractIDsMissing(t *testing.T) {
	operatorID, controlID := ExtractIDs("<html><body>no widget here</body></html>")
	if operatorID != "" || controlID != "" {
		t.Errorf("expected empty IDs, got %q %q", operatorID, controlID)
	}
}

func TestStatusFromPreview(t *testing.T) {
	makePreview := func(date string, qty int, highlighted bool) *previewResponse {
		var resp previewResponse
		resp.ProductAvailabilityPreview.Rows = []previewRow{
			{Dates: []previewDate{{Date: date, QtyAvailableForReservation: qty, HighlightAsAvailableToSelect: highlighted}}},
		}
		return &resp
	}

	tests := []struct {
		name     string
		resp     *previewResponse
		expected Status
	}{
		{"qty available", makePreview("2026-09-12T00:00:00", 2, false), StatusAvailable},
		{"highlighted only", makePreview("2026-09-12", 0, true), StatusAvailable},
		{"booked out", makePreview("2026-09-12", 0, false), StatusHeavilyBooked},
		{"wrong date", makePreview("2026-09-13", 5, false), StatusHeavilyBooked},
		{"no rows", &previewResponse{}, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromPreview(tt.resp, "2026-09-12"); got != tt.expected {
				t.Errorf("statusFromPreview = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestPoll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tidal-river-campground", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>{"operatorId": 1, "controlId": 2}</script></html>`)
	})
	mux.HandleFunc("/api/getProductAvailabilityPreview", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("preview API should be called with POST, got %s", r.Method)
		}
		fmt.Fprint(w, `{"ProductAvailabilityPreview":{"Rows":[{"Dates":[{"Date":"2026-09-12T00:00:00","QtyAvailableForReservation":3}]}]}}`)
	})
	mux.HandleFunc("/broken-camp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := NewPoller()
	p.delay = 0
	p.sleep = func(time.Duration) {}
	p.bookingBase = server.URL + "/"
	p.previewAPI = server.URL + "/api/getProductAvailabilityPreview"

	matched := "https://www.parks.vic.gov.au/where-to-stay/tidal-river-campground"
	broken := "https://www.parks.vic.gov.au/where-to-stay/broken-camp"
	sites := []*site.Site{
		{ID: "prom-tidal-river", SourceURL: &matched},
		{ID: "prom-broken", SourceURL: &broken},
		{ID: "prom-unmatched"},
	}

	report := p.Poll(sites, "2026-09-12")

	if got := report.Items["prom-tidal-river"]; got != StatusAvailable {
		t.Errorf("tidal river status = %q, expected available", got)
	}
	if got := report.Items["prom-broken"]; got != StatusUnknown {
		t.Errorf("broken camp status = %q, expected unknown", got)
	}
	if _, ok := report.Items["prom-unmatched"]; ok {
		t.Error("site without a source URL should be omitted from the report")
	}
	if report.Date != "2026-09-12" {
		t.Errorf("report date = %q", report.Date)
	}
}

package availability

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmaher/campcaster/internal/site"
)

const (
	// BookingBase hosts the per-campground booking pages.
	BookingBase = "https://bookings.parks.vic.gov.au/"
	// PreviewAPI is the Bookeasy availability-preview endpoint.
	PreviewAPI = "https://webapi.bookeasy.com.au/api/getProductAvailabilityPreview"
	UserAgent  = "campcaster/0.1"
	Timeout    = 30 * time.Second

	// requestsPerMinute bounds the poll rate against the booking service.
	requestsPerMinute = 30
)

// Status is the availability verdict for one site on one date.
type Status string

const (
	StatusAvailable     Status = "available"
	StatusHeavilyBooked Status = "heavily_booked"
	StatusUnknown       Status = "unknown"
)

// Report is the poll output consumed by the map UI.
type Report struct {
	Date        string            `json:"date"`
	GeneratedAt string            `json:"generatedAt"`
	Items       map[string]Status `json:"items"`
}

var (
	operatorIDPattern = regexp.MustCompile(`operatorId"\s*:\s*(\d+)`)
	controlIDPattern  = regexp.MustCompile(`controlId"\s*:\s*(\d+)`)
)

// BookingURL derives the booking page for a scraped source URL. The generic
// "camping" landing slug has no bookable products and maps to nothing.
func BookingURL(sourceURL string) (string, bool) {
	if sourceURL == "" {
		return "", false
	}
	segments := strings.Split(strings.TrimRight(sourceURL, "/"), "/")
	slug := segments[len(segments)-1]
	if slug == "" || slug == "camping" {
		return "", false
	}
	return BookingBase + slug, true
}

// ExtractIDs pulls the Bookeasy operator and control IDs out of the booking
// page's script tags. Missing IDs come back empty.
func ExtractIDs(html string) (operatorID, controlID string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	doc.Find("script").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := sel.Text()
		if operatorID == "" {
			if m := operatorIDPattern.FindStringSubmatch(text); m != nil {
				operatorID = m[1]
			}
		}
		if controlID == "" {
			if m := controlIDPattern.FindStringSubmatch(text); m != nil {
				controlID = m[1]
			}
		}
		return operatorID == "" || controlID == ""
	})
	return operatorID, controlID
}

// previewResponse mirrors the slice of the Bookeasy payload we read.
type previewResponse struct {
	ProductAvailabilityPreview struct {
		Rows []previewRow `json:"Rows"`
	} `json:"ProductAvailabilityPreview"`
}

type previewRow struct {
	Dates []previewDate `json:"Dates"`
}

type previewDate struct {
	Date                         string `json:"Date"`
	QtyAvailableForReservation   int    `json:"QtyAvailableForReservation"`
	HighlightAsAvailableToSelect bool   `json:"HighlightAsAvailableToSelect"`
}

// statusFromPreview reduces a preview payload to a Status for one date. An
// empty preview is unknown, not heavily booked.
func statusFromPreview(resp *previewResponse, date string) Status {
	rows := resp.ProductAvailabilityPreview.Rows
	if len(rows) == 0 {
		return StatusUnknown
	}

	for _, row := range rows {
		for _, entry := range row.Dates {
			entryDate := entry.Date
			if len(entryDate) > 10 {
				entryDate = entryDate[:10]
			}
			if entryDate != date {
				continue
			}
			if entry.QtyAvailableForReservation > 0 || entry.HighlightAsAvailableToSelect {
				return StatusAvailable
			}
		}
	}
	return StatusHeavilyBooked
}

// Poller queries booking pages and the preview API with a minimum interval
// between requests. The throttle state is owned by the instance.
type Poller struct {
	client        *http.Client
	previewAPI    string
	bookingBase   string
	delay         time.Duration
	lastRequestAt time.Time
	sleep         func(time.Duration)
}

// NewPoller creates a Poller throttled to the default request rate.
func NewPoller() *Poller {
	return &Poller{
		client:      &http.Client{Timeout: Timeout},
		previewAPI:  PreviewAPI,
		bookingBase: BookingBase,
		delay:       time.Minute / requestsPerMinute,
		sleep:       time.Sleep,
	}
}

// Poll checks availability on date (YYYY-MM-DD) for every site with a source
// URL that maps to a booking page. Sites without a booking page are omitted;
// per-site failures record StatusUnknown.
func (p *Poller) Poll(sites []*site.Site, date string) *Report {
	report := &Report{
		Date:        date,
		GeneratedAt: time.Now().UTC().Format("2006-01-02T15:04:05") + "Z",
		Items:       make(map[string]Status),
	}

	for _, s := range sites {
		sourceURL := ""
		if s.SourceURL != nil {
			sourceURL = *s.SourceURL
		}
		bookingURL, ok := p.rebase(sourceURL)
		if !ok {
			continue
		}
		report.Items[s.ID] = p.pollOne(bookingURL, date)
	}
	return report
}

// rebase maps a source URL to a booking URL under the poller's booking base,
// which tests point at a local server.
func (p *Poller) rebase(sourceURL string) (string, bool) {
	url, ok := BookingURL(sourceURL)
	if !ok {
		return "", false
	}
	return p.bookingBase + strings.TrimPrefix(url, BookingBase), true
}

func (p *Poller) pollOne(bookingURL, date string) Status {
	html, err := p.get(bookingURL)
	if err != nil {
		return StatusUnknown
	}

	operatorID, controlID := ExtractIDs(html)
	if operatorID == "" || controlID == "" {
		return StatusUnknown
	}

	apiURL := fmt.Sprintf(
		"%s?operatorId=%s&controlId=%s&type=accom&queryStartDate=%s&qtyOfDates=14&includeInternalProducts=false",
		p.previewAPI, operatorID, controlID, date,
	)
	body, err := p.post(apiURL)
	if err != nil {
		return StatusUnknown
	}

	var preview previewResponse
	if err := json.Unmarshal([]byte(body), &preview); err != nil {
		return StatusUnknown
	}
	return statusFromPreview(&preview, date)
}

func (p *Poller) get(url string) (string, error) {
	return p.request(http.MethodGet, url)
}

func (p *Poller) post(url string) (string, error) {
	return p.request(http.MethodPost, url)
}

func (p *Poller) request(method, url string) (string, error) {
	p.throttle()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (p *Poller) throttle() {
	if p.delay <= 0 {
		p.lastRequestAt = time.Now()
		return
	}
	if !p.lastRequestAt.IsZero() {
		if elapsed := time.Since(p.lastRequestAt); elapsed < p.delay {
			p.sleep(p.delay - elapsed)
		}
	}
	p.lastRequestAt = time.Now()
}

// WriteReport persists the report for the map UI.
func WriteReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding availability: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing availability: %w", err)
	}
	return nil
}

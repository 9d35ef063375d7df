package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// ProxyBase is the text-rendering proxy. Responses are readable text,
	// not markup, so no HTML parsing happens on this path.
	ProxyBase = "https://r.jina.ai/http://"
	UserAgent = "campcaster/0.1"
	Timeout   = 30 * time.Second

	// DefaultDelay keeps the crawl under ~26 requests per minute.
	DefaultDelay   = 2300 * time.Millisecond
	DefaultRetries = 4
)

// FetchError reports a failed fetch for one URL. The orchestrator treats it
// as "skip this URL, continue the batch".
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher fetches page text with process-wide throttling. The last-request
// timestamp is owned by the instance, so fetchers in tests never interfere
// with each other.
type Fetcher struct {
	client         *http.Client
	proxyBase      string
	delay          time.Duration
	retries        int
	backoffInitial time.Duration
	backoffStep    time.Duration
	lastRequestAt  time.Time
	sleep          func(time.Duration)
}

// New creates a Fetcher with the given minimum inter-request interval.
// A non-positive delay disables throttling.
func New(delay time.Duration) *Fetcher {
	return &Fetcher{
		client:         &http.Client{Timeout: Timeout},
		proxyBase:      ProxyBase,
		delay:          delay,
		retries:        DefaultRetries,
		backoffInitial: 10 * time.Second,
		backoffStep:    10 * time.Second,
		sleep:          time.Sleep,
	}
}

// FetchText returns the rendered text of url, routed through the proxy.
// HTTP 429/500/502/503 are retried up to the retry budget with a backoff
// that grows linearly with the attempt number; anything else fails at once.
func (f *Fetcher) FetchText(url string) (string, error) {
	proxied := f.proxyBase + stripScheme(url)

	var body string
	operation := func() error {
		f.throttle()
		text, status, err := f.get(proxied)
		if err != nil {
			return backoff.Permanent(&FetchError{URL: url, Err: err})
		}
		if status == http.StatusOK {
			body = text
			return nil
		}
		ferr := &FetchError{URL: url, StatusCode: status}
		if retryable(status) {
			return ferr
		}
		return backoff.Permanent(ferr)
	}

	policy := backoff.WithMaxRetries(&linearBackOff{
		initial: f.backoffInitial,
		step:    f.backoffStep,
	}, uint64(f.retries))

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// throttle sleeps until at least the configured interval has elapsed since
// the previous request.
func (f *Fetcher) throttle() {
	if f.delay <= 0 {
		f.lastRequestAt = time.Now()
		return
	}
	if !f.lastRequestAt.IsZero() {
		if elapsed := time.Since(f.lastRequestAt); elapsed < f.delay {
			f.sleep(f.delay - elapsed)
		}
	}
	f.lastRequestAt = time.Now()
}

func (f *Fetcher) get(url string) (string, int, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	return string(data), resp.StatusCode, nil
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return true
	}
	return false
}

func stripScheme(url string) string {
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimPrefix(url, "https://")
}

// linearBackOff waits initial + attempt*step between retries.
type linearBackOff struct {
	initial time.Duration
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	d := b.initial + time.Duration(b.attempt)*b.step
	b.attempt++
	return d
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

package market

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSinaEndpoint = "http://hq.sinajs.cn/list="
	sinaReferer         = "https://finance.sina.com.cn"
	// The endpoint rejects default client identifiers, so a desktop
	// browser User-Agent is mandatory.
	sinaUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type SinaConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type SinaProvider struct {
	endpoint string
	client   *http.Client
}

func NewSinaProvider(cfg SinaConfig) *SinaProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultSinaEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &SinaProvider{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *SinaProvider) Name() string { return "sina" }

func (p *SinaProvider) Fetch(ctx context.Context, code string) (*Quote, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+code, nil)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Referer", sinaReferer)
	req.Header.Set("User-Agent", sinaUserAgent)
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("request sina: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("read sina: %w", err)}
	}
	return parseSinaBody(code, string(data))
}

// format: var hq_str_sh601006="name,open,preclose,price,high,low,...,date,time";
func parseSinaBody(code, body string) (*Quote, error) {
	body = strings.TrimSpace(body)
	prefix := "var hq_str_" + code + "="
	if !strings.HasPrefix(body, prefix) {
		return nil, &FetchError{Code: code, Reason: ReasonBadFormat, Err: fmt.Errorf("unexpected payload prefix")}
	}
	payload := strings.TrimSuffix(body[len(prefix):], ";")
	payload = strings.Trim(payload, "\"")
	q := &Quote{}
	assignFields(q, strings.Split(payload, ","))
	return q, nil
}

// assignFields maps the comma-split payload onto the fixed 32-position
// schema. Short input leaves trailing fields unset; extra fields are
// dropped. Neither is an error.
func assignFields(q *Quote, fields []string) {
	for i, f := range fields {
		switch {
		case i == 0:
			q.Name = f
		case i == 1:
			q.Open = parsePrice(f)
		case i == 2:
			q.PrevClose = parsePrice(f)
		case i == 3:
			q.Current = parsePrice(f)
		case i == 4:
			q.High = parsePrice(f)
		case i == 5:
			q.Low = parsePrice(f)
		case i == 6:
			q.BidComp = f
		case i == 7:
			q.AskComp = f
		case i == 8:
			q.Volume = f
		case i == 9:
			q.Turnover = f
		case i >= 10 && i < 20:
			assignLevel(&q.Bids[(i-10)/2], i-10, f)
		case i >= 20 && i < 30:
			assignLevel(&q.Asks[(i-20)/2], i-20, f)
		case i == 30:
			q.Date = f
		case i == 31:
			q.Time = f
		}
	}
}

func assignLevel(lv *Level, off int, f string) {
	if off%2 == 0 {
		lv.Qty = f
	} else {
		lv.Price = f
	}
}

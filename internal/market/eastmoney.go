package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultEastmoneyEndpoint = "https://push2.eastmoney.com/api/qt/stock/get"

type EastmoneyConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// EastmoneyProvider fills the price block of a Quote from the Eastmoney
// push API. The payload has no order-book ladder, so those levels stay
// empty and are skipped by the renderer.
type EastmoneyProvider struct {
	endpoint string
	client   *http.Client
}

type eastmoneyResp struct {
	Data *eastmoneyData `json:"data"`
}

type eastmoneyData struct {
	Code      string  `json:"f57"`
	Name      string  `json:"f58"`
	Price     float64 `json:"f43"`
	High      float64 `json:"f44"`
	Low       float64 `json:"f45"`
	Open      float64 `json:"f46"`
	Volume    float64 `json:"f47"`
	Turnover  float64 `json:"f48"`
	PrevClose float64 `json:"f60"`
}

func NewEastmoneyProvider(cfg EastmoneyConfig) *EastmoneyProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEastmoneyEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &EastmoneyProvider{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (p *EastmoneyProvider) Name() string { return "eastmoney" }

func (p *EastmoneyProvider) Fetch(ctx context.Context, code string) (*Quote, error) {
	secid, err := toSecID(code)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("invalid base url: %w", err)}
	}
	v := u.Query()
	v.Set("secid", secid)
	v.Set("fields", "f57,f58,f43,f44,f45,f46,f47,f48,f60")
	v.Set("ut", "fa5fd1943c7b386f172d6893dbfba10b")
	v.Set("fltt", "2")
	v.Set("invt", "2")
	u.RawQuery = v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("request eastmoney: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Code: code, Reason: ReasonTransport, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var payload eastmoneyResp
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{Code: code, Reason: ReasonBadFormat, Err: fmt.Errorf("decode eastmoney: %w", err)}
	}
	if payload.Data == nil {
		return nil, &FetchError{Code: code, Reason: ReasonBadFormat, Err: fmt.Errorf("empty response data")}
	}
	if payload.Data.Price <= 0 {
		return nil, &FetchError{Code: code, Reason: ReasonBadFormat, Err: fmt.Errorf("invalid price for %s", code)}
	}

	now := time.Now()
	return &Quote{
		Code:      code,
		Name:      payload.Data.Name,
		Open:      numberPrice(payload.Data.Open),
		PrevClose: numberPrice(payload.Data.PrevClose),
		Current:   numberPrice(payload.Data.Price),
		High:      numberPrice(payload.Data.High),
		Low:       numberPrice(payload.Data.Low),
		Volume:    strconv.FormatFloat(payload.Data.Volume, 'f', -1, 64),
		Turnover:  strconv.FormatFloat(payload.Data.Turnover, 'f', -1, 64),
		Date:      now.Format("2006-01-02"),
		Time:      now.Format("15:04:05"),
	}, nil
}

func toSecID(code string) (string, error) {
	if err := validateCode(code); err != nil {
		return "", err
	}
	if strings.HasPrefix(code, "sh") {
		return "1." + strings.TrimPrefix(code, "sh"), nil
	}
	return "0." + strings.TrimPrefix(code, "sz"), nil
}

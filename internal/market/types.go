package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Price holds a quote field that is numeric when the vendor sent a
// parseable number and plain text otherwise. The raw text is always kept.
type Price struct {
	Value float64
	Raw   string
	Valid bool
}

func parsePrice(s string) Price {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Price{Raw: s}
	}
	return Price{Value: v, Raw: s, Valid: true}
}

func numberPrice(v float64) Price {
	return Price{Value: v, Raw: strconv.FormatFloat(v, 'f', -1, 64), Valid: true}
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Valid {
		return json.Marshal(p.Value)
	}
	return json.Marshal(p.Raw)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*p = numberPrice(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = parsePrice(s)
	return nil
}

// Level is one rung of the five-deep order-book ladder. Quantity and price
// stay raw strings; an empty string means the vendor sent nothing for it.
type Level struct {
	Qty   string `json:"qty"`
	Price string `json:"price"`
}

// Quote is one market snapshot for one instrument, shaped after the
// 32-field Sina payload. Code is never part of the payload; callers attach
// it when they need it. ChangeAmount/ChangePct are derived at display time.
type Quote struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`

	Open      Price `json:"open"`
	PrevClose Price `json:"prev_close"`
	Current   Price `json:"current"`
	High      Price `json:"high"`
	Low       Price `json:"low"`

	BidComp string `json:"bid_comp"`
	AskComp string `json:"ask_comp"`

	Volume   string `json:"volume"`
	Turnover string `json:"turnover"`

	Bids [5]Level `json:"bids"`
	Asks [5]Level `json:"asks"`

	Date string `json:"date"`
	Time string `json:"time"`

	ChangeAmount float64 `json:"change_amount,omitempty"`
	ChangePct    float64 `json:"change_pct,omitempty"`
	HasChange    bool    `json:"-"`
}

type Provider interface {
	Name() string
	Fetch(ctx context.Context, code string) (*Quote, error)
}

type Reason string

const (
	ReasonBadPrefix Reason = "bad_prefix"
	ReasonTransport Reason = "transport"
	ReasonBadFormat Reason = "bad_format"
)

// FetchError carries why a fetch failed so callers can decide how to
// surface it. Failures are per-code and never fatal to the caller's loop.
type FetchError struct {
	Code   string
	Reason Reason
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason, defaulting to transport for errors
// that did not come from a provider.
func ReasonOf(err error) Reason {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return ReasonTransport
}

func validateCode(code string) error {
	if len(code) >= 2 && (code[:2] == "sh" || code[:2] == "sz") {
		return nil
	}
	return &FetchError{
		Code:   code,
		Reason: ReasonBadPrefix,
		Err:    fmt.Errorf("code must start with sh or sz"),
	}
}

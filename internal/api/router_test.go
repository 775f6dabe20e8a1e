package api

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/require"

	"ashare-quote/internal/market"
)

type fakeProvider struct {
	quotes map[string]*market.Quote
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(_ context.Context, code string) (*market.Quote, error) {
	if q, ok := f.quotes[code]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, &market.FetchError{Code: code, Reason: market.ReasonBadPrefix, Err: fmt.Errorf("unknown code")}
}

func newTestServer(provider market.Provider, defaults []string) *server.Hertz {
	h := server.Default()
	RegisterRoutes(h, provider, defaults)
	return h
}

func TestHealthz(t *testing.T) {
	h := newTestServer(&fakeProvider{}, nil)
	w := ut.PerformRequest(h.Engine, "GET", "/healthz", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	require.JSONEq(t, `{"ok":true}`, string(resp.Body()))
}

func TestQuotes_PerCodeErrors(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]*market.Quote{
		"sh600000": {
			Name:      "浦发银行",
			Current:   market.Price{Value: 7.92, Raw: "7.92", Valid: true},
			PrevClose: market.Price{Value: 7.88, Raw: "7.88", Valid: true},
		},
	}}
	h := newTestServer(provider, nil)

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/quotes?symbols=sh600000,badcode", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	var body QuotesResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	require.True(t, body.OK)
	require.Equal(t, "fake", body.Source)
	require.Len(t, body.Quotes, 1)
	require.Equal(t, "浦发银行", body.Quotes[0].Name)
	require.Equal(t, "sh600000", body.Quotes[0].Code)
	require.InDelta(t, 7.92, body.Quotes[0].Current.Value, 1e-9)
	require.Equal(t, map[string]string{"badcode": "bad_prefix"}, body.Errors)
}

func TestQuotes_DefaultSymbols(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]*market.Quote{
		"sh000001": {Name: "上证指数"},
	}}
	h := newTestServer(provider, []string{"sh000001"})

	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/quotes", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	var body QuotesResponse
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	require.Len(t, body.Quotes, 1)
	require.Equal(t, "上证指数", body.Quotes[0].Name)
}

func TestQuotes_NoSymbols(t *testing.T) {
	h := newTestServer(&fakeProvider{}, nil)
	w := ut.PerformRequest(h.Engine, "GET", "/api/v1/quotes", nil)
	require.Equal(t, 400, w.Result().StatusCode())
}

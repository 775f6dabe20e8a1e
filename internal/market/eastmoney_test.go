package market

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newEastmoneyTestProvider(t *testing.T, handler http.HandlerFunc) *EastmoneyProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewEastmoneyProvider(EastmoneyConfig{Endpoint: srv.URL, Timeout: 2 * time.Second})
}

func TestEastmoneyFetch_FillsPriceBlock(t *testing.T) {
	p := newEastmoneyTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "1.600000", r.URL.Query().Get("secid"))
		require.Contains(t, r.URL.Query().Get("fields"), "f43")
		_, _ = w.Write([]byte(`{"data":{"f57":"600000","f58":"浦发银行","f43":7.92,"f44":8.01,"f45":7.85,"f46":7.90,"f47":251036,"f48":199384210.5,"f60":7.88}}`))
	})

	q, err := p.Fetch(t.Context(), "sh600000")
	require.NoError(t, err)
	require.Equal(t, "浦发银行", q.Name)
	require.Equal(t, "sh600000", q.Code)
	require.InDelta(t, 7.92, q.Current.Value, 1e-9)
	require.InDelta(t, 7.88, q.PrevClose.Value, 1e-9)
	require.InDelta(t, 7.90, q.Open.Value, 1e-9)
	require.Equal(t, "251036", q.Volume)
	require.Equal(t, "199384210.5", q.Turnover)
	require.NotEmpty(t, q.Date)
	require.NotEmpty(t, q.Time)
	// no ladder in the eastmoney payload
	require.Equal(t, Level{}, q.Bids[0])
	require.Equal(t, Level{}, q.Asks[0])
}

func TestEastmoneyFetch_SecIDMapping(t *testing.T) {
	var gotSecID string
	p := newEastmoneyTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotSecID = r.URL.Query().Get("secid")
		_, _ = w.Write([]byte(`{"data":{"f58":"平安银行","f43":10.5,"f60":10.4}}`))
	})

	_, err := p.Fetch(t.Context(), "sz000001")
	require.NoError(t, err)
	require.Equal(t, "0.000001", gotSecID)
}

func TestEastmoneyFetch_BadPrefix(t *testing.T) {
	p := newEastmoneyTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	q, err := p.Fetch(t.Context(), "us.AAPL")
	require.Nil(t, q)
	require.Equal(t, ReasonBadPrefix, ReasonOf(err))
}

func TestEastmoneyFetch_EmptyData(t *testing.T) {
	p := newEastmoneyTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	})
	q, err := p.Fetch(t.Context(), "sh600000")
	require.Nil(t, q)
	require.Equal(t, ReasonBadFormat, ReasonOf(err))
}

func TestEastmoneyFetch_InvalidPrice(t *testing.T) {
	p := newEastmoneyTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"f58":"浦发银行","f43":0}}`))
	})
	q, err := p.Fetch(t.Context(), "sh600000")
	require.Nil(t, q)
	require.Equal(t, ReasonBadFormat, ReasonOf(err))
}

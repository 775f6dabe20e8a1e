package api

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"ashare-quote/internal/market"
	"ashare-quote/internal/symbols"
)

type QuotesResponse struct {
	OK     bool              `json:"ok"`
	Source string            `json:"source"`
	Quotes []*market.Quote   `json:"quotes"`
	Errors map[string]string `json:"errors,omitempty"`
}

func RegisterRoutes(h *server.Hertz, provider market.Provider, defaultSymbols []string) {
	h.GET("/healthz", func(_ context.Context, c *app.RequestContext) {
		c.JSON(http.StatusOK, map[string]bool{"ok": true})
	})

	h.GET("/api/v1/quotes", func(ctx context.Context, c *app.RequestContext) {
		syms := symbols.ParseList(c.Query("symbols"))
		if len(syms) == 0 {
			syms = defaultSymbols
		}
		if len(syms) == 0 {
			c.JSON(http.StatusBadRequest, map[string]any{
				"ok":    false,
				"error": "symbols is empty",
			})
			return
		}

		resp := QuotesResponse{
			OK:     true,
			Source: provider.Name(),
			Quotes: make([]*market.Quote, 0, len(syms)),
		}
		// one code at a time, in request order; failures stay per-code
		for _, sym := range syms {
			q, err := provider.Fetch(ctx, sym)
			if err != nil {
				log.Printf("fetch %s error: %v", sym, err)
				if resp.Errors == nil {
					resp.Errors = make(map[string]string)
				}
				resp.Errors[sym] = string(market.ReasonOf(err))
				continue
			}
			if q.Code == "" {
				q.Code = sym
			}
			resp.Quotes = append(resp.Quotes, q)
		}
		c.JSON(http.StatusOK, resp)
	})
}

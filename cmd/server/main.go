package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"ashare-quote/internal/api"
	"ashare-quote/internal/config"
	"ashare-quote/internal/market"
)

func main() {
	cfgPath := flag.String("config", "configs/app.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	provider, err := buildProvider(cfg.Market)
	if err != nil {
		log.Fatalf("provider error: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	h := server.Default(server.WithHostPorts(addr))

	api.RegisterRoutes(h, provider, cfg.Market.Symbols)
	log.Printf("route registered: GET /api/v1/quotes")

	log.Printf("server starting on %s (market.source=%s)", addr, provider.Name())
	if err := h.Run(); err != nil {
		log.Fatalf("server run error: %v", err)
	}
}

func buildProvider(cfg config.MarketConfig) (market.Provider, error) {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	sina := market.NewSinaProvider(market.SinaConfig{Endpoint: cfg.SinaEndpoint, Timeout: timeout})
	east := market.NewEastmoneyProvider(market.EastmoneyConfig{Endpoint: cfg.EastmoneyEndpoint, Timeout: timeout})
	switch cfg.Source {
	case "", "sina":
		return sina, nil
	case "eastmoney":
		return east, nil
	case "auto":
		return market.NewMultiProvider(sina, east), nil
	}
	return nil, fmt.Errorf("unknown market source: %q", cfg.Source)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"ashare-quote/internal/config"
	"ashare-quote/internal/display"
	"ashare-quote/internal/market"
	"ashare-quote/internal/symbols"
)

func main() {
	var brief bool
	var filePath string
	var cfgPath string
	var source string

	flag.CommandLine.SetOutput(os.Stdout)
	flag.BoolVar(&brief, "brief", false, "简洁模式：仅显示股票名称、当前价格、涨跌幅")
	flag.BoolVar(&brief, "b", false, "--brief 的简写")
	flag.StringVar(&filePath, "file", "", "从文件读取股票代码列表，每行一个代码")
	flag.StringVar(&filePath, "f", "", "--file 的简写")
	flag.StringVar(&cfgPath, "config", "", "可选的配置文件路径")
	flag.StringVar(&source, "source", "", "行情源: sina | eastmoney | auto")
	flag.Usage = usage
	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("配置错误: %v\n", err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	if source != "" {
		cfg.Market.Source = source
	}

	var codes []string
	switch {
	case filePath != "":
		var err error
		codes, err = symbols.ReadFile(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Printf("错误: 文件 %s 不存在\n", filePath)
			} else {
				fmt.Printf("读取文件时发生错误: %v\n", err)
			}
			os.Exit(1)
		}
	case flag.NArg() > 0:
		codes = symbols.ParseList(flag.Arg(0))
	}
	if len(codes) == 0 {
		fmt.Println("错误: 必须提供股票代码或文件路径")
		flag.Usage()
		os.Exit(1)
	}

	provider, err := buildProvider(cfg.Market)
	if err != nil {
		fmt.Printf("错误: %v\n", err)
		os.Exit(1)
	}

	r := display.New(os.Stdout)
	for _, code := range codes {
		q, err := provider.Fetch(context.Background(), code)
		if err != nil {
			fmt.Println(diagnostic(err))
		}
		r.Render(q, brief)
		if !brief {
			fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
		}
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
	return nil, fmt.Errorf("未知的行情源: %q", cfg.Source)
}

func diagnostic(err error) string {
	var fe *market.FetchError
	if errors.As(err, &fe) {
		switch fe.Reason {
		case market.ReasonBadPrefix:
			return "错误: 股票代码必须以 'sh' (沪市) 或 'sz' (深市) 开头"
		case market.ReasonBadFormat:
			return "错误: 返回数据格式不符合预期"
		case market.ReasonTransport:
			return fmt.Sprintf("请求错误: %v", fe.Err)
		}
	}
	return fmt.Sprintf("发生未知错误: %v", err)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "用法: stockquote [选项] [股票代码]")
	fmt.Fprintln(out, "示例: stockquote sh601006 或 stockquote sh601006,sz000001")
	fmt.Fprintln(out, "选项:")
	flag.PrintDefaults()
}

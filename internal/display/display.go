package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ashare-quote/internal/market"
)

const noDataNotice = "没有获取到股票信息"

// Renderer prints quotes to a writer in either a one-line brief form or a
// multi-section detailed report.
type Renderer struct {
	w  io.Writer
	np *message.Printer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w, np: message.NewPrinter(language.English)}
}

// Render prints the quote. As a side effect the change amount and percent
// are computed onto the passed-in quote when current and previous close
// are both numeric and previous close is nonzero.
func (r *Renderer) Render(q *market.Quote, brief bool) {
	if q == nil {
		fmt.Fprintln(r.w, noDataNotice)
		return
	}
	computeChange(q)
	if brief {
		r.renderBrief(q)
		return
	}
	r.renderDetail(q)
}

func computeChange(q *market.Quote) {
	if !q.Current.Valid || !q.PrevClose.Valid || q.PrevClose.Value == 0 {
		return
	}
	q.ChangeAmount = q.Current.Value - q.PrevClose.Value
	q.ChangePct = q.ChangeAmount / q.PrevClose.Value * 100
	q.HasChange = true
}

// sign is "+" for gains and for the no-change default; losses carry their
// own minus from the number formatting.
func sign(q *market.Quote) string {
	if !q.HasChange || q.ChangeAmount >= 0 {
		return "+"
	}
	return ""
}

func (r *Renderer) renderBrief(q *market.Quote) {
	pct := "0.00%"
	if q.HasChange {
		pct = fmt.Sprintf("%.2f%%", q.ChangePct)
	}
	fmt.Fprintf(r.w, "%s: %s %s%s\n", q.Name, priceText(q.Current), sign(q), pct)
}

func (r *Renderer) renderDetail(q *market.Quote) {
	rule := strings.Repeat("-", 50)

	fmt.Fprintf(r.w, "\n%s (%s)\n", q.Name, q.Code)
	fmt.Fprintf(r.w, "日期: %s %s\n", q.Date, q.Time)
	fmt.Fprintln(r.w, rule)

	fmt.Fprintf(r.w, "当前价格: %s\n", priceText(q.Current))
	fmt.Fprintf(r.w, "今日开盘: %s\n", priceText(q.Open))
	fmt.Fprintf(r.w, "昨日收盘: %s\n", priceText(q.PrevClose))
	fmt.Fprintf(r.w, "今日最高: %s\n", priceText(q.High))
	fmt.Fprintf(r.w, "今日最低: %s\n", priceText(q.Low))

	if q.HasChange {
		fmt.Fprintf(r.w, "涨跌额: %s%.2f\n", sign(q), q.ChangeAmount)
		fmt.Fprintf(r.w, "涨跌幅: %s%.2f%%\n", sign(q), q.ChangePct)
	}

	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "买盘信息:")
	r.renderLadder("买", q.Bids)
	fmt.Fprintln(r.w, "\n卖盘信息:")
	r.renderLadder("卖", q.Asks)
}

// renderLadder prints levels 1-5 best-first, skipping any rung missing a
// quantity or price.
func (r *Renderer) renderLadder(side string, levels [5]market.Level) {
	for i, lv := range levels {
		if lv.Qty == "" || lv.Price == "" {
			continue
		}
		qty, err := strconv.Atoi(lv.Qty)
		if err != nil {
			continue
		}
		price, err := strconv.ParseFloat(lv.Price, 64)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.w, "%s%d: %s股 @ %.2f\n", side, i+1, r.np.Sprintf("%d", qty), price)
	}
}

func priceText(p market.Price) string {
	if p.Valid {
		return fmt.Sprintf("%.2f", p.Value)
	}
	return p.Raw
}

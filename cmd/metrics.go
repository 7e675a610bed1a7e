package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type metricsCmd struct{}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display the portfolio performance report" }
func (*metricsCmd) Usage() string {
	return `pt metrics

  Displays per-currency values and returns, USD-equivalent totals, trade
  statistics over completed trades, and the maximum drawdown of the daily
  value series.
`
}

func (*metricsCmd) SetFlags(f *flag.FlagSet) {}

func (c *metricsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	m := p.ComputeMetrics()

	var md strings.Builder
	md.WriteString("# Performance\n\n")
	md.WriteString("| Currency | Cash | Positions | Total | Initial | Return | Return % |\n")
	md.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, cm := range m.PerCurrency {
		fmt.Fprintf(&md, "| %s | %s | %s | %s | %s | %s | %s |\n",
			cm.Currency, cm.Cash, cm.PositionsValue, cm.TotalValue,
			cm.InitialCapital, cm.Return.SignedString(), cm.ReturnPct.SignedString())
	}
	fmt.Fprintf(&md, "\n**Total (USD eq.)**: %s, return %s (%s)",
		m.TotalValueUSD, m.TotalReturnUSD.SignedString(), m.TotalReturnPct.SignedString())
	if m.RatesStale {
		md.WriteString(" _(stale rates)_")
	}
	md.WriteString("\n\n## Trades\n\n")
	fmt.Fprintf(&md, "- Completed: %d of %d (win rate %s)\n", m.CompletedTrades, m.TotalTrades, m.WinRate)
	fmt.Fprintf(&md, "- Avg win: %s, avg loss: %s\n", m.AvgWin, m.AvgLoss)
	if m.BestTrade != nil {
		fmt.Fprintf(&md, "- Best: %s %s (%s)\n", m.BestTrade.Symbol, m.BestTrade.PnL.SignedString(), m.BestTrade.PnLPct.SignedString())
	}
	if m.WorstTrade != nil {
		fmt.Fprintf(&md, "- Worst: %s %s (%s)\n", m.WorstTrade.Symbol, m.WorstTrade.PnL.SignedString(), m.WorstTrade.PnLPct.SignedString())
	}
	fmt.Fprintf(&md, "- Max drawdown: %s\n", m.MaxDrawdown)

	printMarkdown(md.String())
	return subcommands.ExitSuccess
}

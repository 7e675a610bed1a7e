package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/papertrade"
	"github.com/google/subcommands"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	last      int
	sellsOnly bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the trade journal" }
func (*historyCmd) Usage() string {
	return `pt history [-n <count>] [-sells]

  Displays the journal of executed trades in execution order. Use -n to
  limit the output to the most recent records and -sells to show only
  completed (SELL) trades with their realized P&L.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.last, "n", 0, "Show only the last n trades (0 shows all)")
	f.BoolVar(&c.sellsOnly, "sells", false, "Show only SELL trades")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := openPortfolio()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var trades []papertrade.Trade
	for t := range p.Trades() {
		if c.sellsOnly && t.Action != papertrade.ActionSell {
			continue
		}
		trades = append(trades, t)
	}
	if c.last > 0 && len(trades) > c.last {
		trades = trades[len(trades)-c.last:]
	}

	var md strings.Builder
	md.WriteString("# Trade History\n\n")
	if len(trades) == 0 {
		md.WriteString("No trades recorded.\n")
		printMarkdown(md.String())
		return subcommands.ExitSuccess
	}
	md.WriteString("| # | Date | Action | Shares | Symbol | Price | Total | P&L | Reason |\n")
	md.WriteString("|---:|---|---|---:|---|---:|---:|---:|---|\n")
	for _, t := range trades {
		pnl, reason := "-", "-"
		if t.Action == papertrade.ActionSell {
			pnl = fmt.Sprintf("%s (%s)", t.PnL.SignedString(), t.PnLPct.SignedString())
			reason = t.Reason
		}
		fmt.Fprintf(&md, "| %d | %s | %s | %d | %s | %s | %s | %s | %s |\n",
			t.ID, t.Date.Format("2006-01-02"), t.Action, t.Shares, t.Symbol,
			t.Price, t.Total, pnl, reason)
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}

// Package papertrade implements a paper-trading portfolio ledger: simulated
// order execution against real market prices, without real capital.
//
// The ledger tracks cash and equity positions across three independent
// currencies (USD, INR, MYR), executes buy and sell orders, and derives
// performance metrics from an auditable trade history.
//
// The core functionalities include:
//   - Currency classification: a symbol's exchange suffix determines its
//     native currency, and every per-symbol computation stays in that
//     currency. Conversion is used only for display and aggregate reporting.
//   - Trade execution: buy and sell orders are validated in full before any
//     state is mutated. Business-rule failures (insufficient funds, missing
//     position, position limits) are reported as result values, never as
//     errors, and leave the portfolio untouched.
//   - Position accounting: single weighted-average cost per symbol, with
//     target and stop-loss prices derived from the average.
//   - Trade journal: an append-only, monotonically identified record of every
//     executed order, with cash and portfolio-value snapshots captured at
//     execution time.
//   - Valuation and performance: daily per-currency value snapshots, win
//     rate, average win/loss, best/worst trade, and max drawdown.
//   - Persistence: the whole portfolio state is stored in a single versioned
//     JSON document, with automatic migration from the legacy
//     single-currency layout.
//
// This package serves as the foundational logic for the `pt` command-line
// tool. It is a library boundary, not a service boundary: the recommendation
// engine, market-data provider, and UI are external collaborators.
package papertrade

// Package common provides shared utilities across the application.
package common

import "strings"

// NameTable resolves ticker symbols to the company names used for headline
// search. Treated as immutable after construction; hand a custom table to the
// fetcher in tests instead of mutating the default.
type NameTable map[string]string

// defaultCompanyNames maps a closed set of well-known tickers to company
// names. Searching news by company name returns far more relevant headlines
// than the raw symbol.
var defaultCompanyNames = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"GOOGL": "Google",
	"GOOG":  "Google",
	"AMZN":  "Amazon",
	"TSLA":  "Tesla",
	"META":  "Meta",
	"NVDA":  "NVIDIA",
	"NFLX":  "Netflix",
	"BA":    "Boeing",
	"JPM":   "JPMorgan",
	"JNJ":   "Johnson & Johnson",
	"V":     "Visa",
	"PG":    "Procter & Gamble",
	"UNH":   "UnitedHealth",
	"HD":    "Home Depot",
	"MA":    "Mastercard",
	"PFE":   "Pfizer",
	"DIS":   "Disney",
	"VZ":    "Verizon",
	"ADBE":  "Adobe",
	"KO":    "Coca-Cola",
	"PEP":   "PepsiCo",
	"T":     "AT&T",
	"CVX":   "Chevron",
	"WMT":   "Walmart",
	"XOM":   "ExxonMobil",
	"INTC":  "Intel",
	"IBM":   "IBM",
	"ORCL":  "Oracle",
	"CSCO":  "Cisco",
	"CRM":   "Salesforce",
	"AVGO":  "Broadcom",
	"GME":   "GameStop",
	"AMC":   "AMC Entertainment",
	"BB":    "BlackBerry",
	"NOK":   "Nokia",
	"PLTR":  "Palantir",
	"RBLX":  "Roblox",
}

// DefaultNameTable returns a copy of the built-in ticker-to-company table.
func DefaultNameTable() NameTable {
	table := make(NameTable, len(defaultCompanyNames))
	for ticker, name := range defaultCompanyNames {
		table[ticker] = name
	}
	return table
}

// Resolve returns the company name for a ticker, or the ticker itself
// (upper-cased) when no mapping exists.
func (t NameTable) Resolve(ticker string) string {
	normalized := strings.ToUpper(strings.TrimSpace(ticker))
	if name, ok := t[normalized]; ok {
		return name
	}
	return normalized
}

// ParseTickers splits a comma-separated ticker list, trimming whitespace and
// normalizing to uppercase. Empty entries are dropped.
func ParseTickers(raw string) []string {
	var tickers []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			tickers = append(tickers, part)
		}
	}
	return tickers
}

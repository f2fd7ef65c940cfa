package analysis

import "strings"

// peerMap is the curated peer universe for the supported large caps.
// Unknown tickers simply get no competitors tab.
var peerMap = map[string][]string{
	"RELIANCE": {"TCS", "INFY", "BHARTIARTL"},
	"TCS":      {"INFY", "WIPRO", "HCLTECH"},
	"HDFCBANK": {"ICICIBANK", "SBIN", "KOTAKBANK"},
}

// Peers returns the curated competitor tickers for symbol. The lookup
// ignores case and any exchange suffix such as ".NS". The returned slice
// is a copy; callers may reorder it.
func Peers(symbol string) []string {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.IndexByte(key, '.'); i >= 0 {
		key = key[:i]
	}

	peers, ok := peerMap[key]
	if !ok {
		return nil
	}
	out := make([]string, len(peers))
	copy(out, peers)
	return out
}

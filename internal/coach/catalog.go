package coach

// Protocol is a catalog entry for a known Base destination. The catalog is
// curated, not exhaustive, and none of it is financial advice.
type Protocol struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ProtocolTip is a catalog entry annotated with the reason it is being
// recommended to this wallet.
type ProtocolTip struct {
	Protocol
	Reason string `json:"reason"`
}

// Protocol ids referenced by the rule table.
const (
	ProtocolBaseBridge = "base-bridge"
	ProtocolLiFi       = "lifi"
	ProtocolUniswap    = "uniswap"
	ProtocolAerodrome  = "aerodrome"
	ProtocolMoonwell   = "moonwell"
	ProtocolMorpho     = "morpho"
)

// protocolCatalog is the process-wide registry, initialized once and never
// mutated. Order here is the order entries are presented to the model.
var protocolCatalog = []Protocol{
	{
		ID:          ProtocolBaseBridge,
		Name:        "Base Bridge",
		URL:         "https://bridge.base.org",
		Description: "Canonical ETH and token bridge to Base. Always verify the domain before bridging.",
	},
	{
		ID:          ProtocolLiFi,
		Name:        "Li.Fi",
		URL:         "https://app.li.fi",
		Description: "Route aggregator for comparing cross-chain and swap routes, with fee previews per step.",
	},
	{
		ID:          ProtocolUniswap,
		Name:        "Uniswap",
		URL:         "https://app.uniswap.org",
		Description: "Popular default DEX on Base. Check price impact and slippage before confirming.",
	},
	{
		ID:          ProtocolAerodrome,
		Name:        "Aerodrome",
		URL:         "https://aerodrome.finance",
		Description: "Base-native liquidity hub. Review pool age and incentives before providing liquidity.",
	},
	{
		ID:          ProtocolMoonwell,
		Name:        "Moonwell",
		URL:         "https://moonwell.fi",
		Description: "Lending and borrowing on Base, a way to put idle balances to work.",
	},
	{
		ID:          ProtocolMorpho,
		Name:        "Morpho",
		URL:         "https://app.morpho.org",
		Description: "Curated lending vaults on Base with transparent risk profiles.",
	},
}

// catalogByID gives O(1) read access; built once at init.
var catalogByID = func() map[string]Protocol {
	m := make(map[string]Protocol, len(protocolCatalog))
	for _, p := range protocolCatalog {
		m[p.ID] = p
	}
	return m
}()

// Catalog returns a copy of the protocol registry.
func Catalog() []Protocol {
	out := make([]Protocol, len(protocolCatalog))
	copy(out, protocolCatalog)
	return out
}

// ProtocolByID looks up a catalog entry.
func ProtocolByID(id string) (Protocol, bool) {
	p, ok := catalogByID[id]
	return p, ok
}

// ResolveTips turns an ordered id list into catalog-backed tips. Duplicates
// collapse to their first occurrence and unknown ids are dropped silently.
// A reason override from reasons wins over the catalog description.
func ResolveTips(ids []string, reasons map[string]string) []ProtocolTip {
	seen := make(map[string]bool, len(ids))
	tips := make([]ProtocolTip, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		p, ok := ProtocolByID(id)
		if !ok {
			continue
		}

		reason := p.Description
		if r, ok := reasons[id]; ok && r != "" {
			reason = r
		}
		tips = append(tips, ProtocolTip{Protocol: p, Reason: reason})
	}

	return tips
}

// Package correlation derives structured links from raw engine records. The
// extractor is a pure function of its input: it performs no I/O and returns
// the same correlations, in the same order, for the same records.
package correlation

import (
	"fmt"
	"osintscan/internal/config"
	"osintscan/pkg/domain"
	"slices"
	"strings"
)

const (
	// UnknownType groups records that carry no type.
	UnknownType = "unknown"
	// BreachDetected is the correlation type emitted for breach findings.
	BreachDetected = "breach_detected"
)

// Pair declares that records of type Left and type Right found in the same
// scan are linked. Correlations of a pair are named "<LeftName>_<RightName>_link".
type Pair struct {
	Left      string
	LeftName  string
	Right     string
	RightName string
	// Describe formats the description from the left and right data.
	Describe func(left, right string) string
}

// DefaultPairs links resolved IPv4 addresses with the host names seen in the same scan.
var DefaultPairs = []Pair{ //nolint: gochecknoglobals
	{
		Left: "IP_ADDRESS", LeftName: "ip",
		Right: "INTERNET_NAME", RightName: "domain",
		Describe: func(ip, host string) string { return fmt.Sprintf("IP %s linked to domain %s", ip, host) },
	},
}

// IPv6Pair links IPv6 addresses with host names. It is off by default and
// enabled through configuration.
var IPv6Pair = Pair{ //nolint: gochecknoglobals
	Left: "IPV6_ADDRESS", LeftName: "ipv6",
	Right: "INTERNET_NAME", RightName: "domain",
	Describe: func(ip, host string) string { return fmt.Sprintf("IPv6 %s linked to domain %s", ip, host) },
}

// DefaultBreachModules are the engine modules whose findings indicate a breach.
var DefaultBreachModules = []string{"sfp_haveibeenpwned", "sfp_leak-lookup"} //nolint: gochecknoglobals

// Options configures an Extractor.
type Options struct {
	// Pairs lists the linked type pairs. Nil uses DefaultPairs.
	Pairs []Pair
	// BreachModules lists module identifiers matched as substrings of a
	// record's module. Nil uses DefaultBreachModules.
	BreachModules []string
	// MaxLinksPerPair caps the correlations emitted per pair. Zero means no cap.
	MaxLinksPerPair int
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	options := Options{MaxLinksPerPair: cfg.Orchestrator.MaxLinksPerPair}
	if cfg.Orchestrator.LinkIPv6 {
		options.Pairs = append(slices.Clone(DefaultPairs), IPv6Pair)
	}

	return options
}

// Extractor derives correlations from raw results.
type Extractor struct {
	options Options
}

// New creates an Extractor.
func New(options Options) Extractor {
	if options.Pairs == nil {
		options.Pairs = DefaultPairs
	}
	if options.BreachModules == nil {
		options.BreachModules = DefaultBreachModules
	}

	return Extractor{options: options}
}

// Extract returns the correlations found in results. The result is never nil.
func (e Extractor) Extract(results []domain.RawResult) []domain.Correlation {
	out := []domain.Correlation{}
	byType := GroupByType(results)

	for _, pair := range e.options.Pairs {
		out = append(out, e.links(pair, byType[pair.Left], byType[pair.Right])...)
	}

	if breaches := e.breaches(results); len(breaches) > 0 {
		out = append(out, domain.Correlation{
			Type:        BreachDetected,
			Description: fmt.Sprintf("Found %d breach indicator(s)", len(breaches)),
			Confidence:  domain.ConfidenceHigh,
			Evidence:    breaches,
		})
	}

	return out
}

// links emits one correlation per left/right combination in input order.
func (e Extractor) links(pair Pair, lefts, rights []domain.RawResult) []domain.Correlation {
	var out []domain.Correlation
	name := pair.LeftName + "_" + pair.RightName + "_link"

	for _, l := range lefts {
		if l.Data == "" {
			continue
		}
		for _, r := range rights {
			if r.Data == "" {
				continue
			}
			if e.options.MaxLinksPerPair > 0 && len(out) >= e.options.MaxLinksPerPair {
				return out
			}

			out = append(out, domain.Correlation{
				Type:        name,
				Description: pair.Describe(l.Data, r.Data),
				Confidence:  domain.ConfidenceMedium,
				Evidence:    []domain.RawResult{l, r},
			})
		}
	}

	return out
}

func (e Extractor) breaches(results []domain.RawResult) []domain.RawResult {
	var out []domain.RawResult
	for _, r := range results {
		if r.Module == "" {
			continue
		}
		for _, m := range e.options.BreachModules {
			if strings.Contains(r.Module, m) {
				out = append(out, r)

				break
			}
		}
	}

	return out
}

// GroupByType buckets records by type, keeping input order inside each
// bucket. Records without a type go to UnknownType.
func GroupByType(results []domain.RawResult) map[string][]domain.RawResult {
	out := make(map[string][]domain.RawResult)
	for _, r := range results {
		t := r.Type
		if t == "" {
			t = UnknownType
		}
		out[t] = append(out[t], r)
	}

	return out
}

package parse

import (
	"strings"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// interconnectorTable is the fixed link-id -> (from, to) mapping for the
// NEM's well-known interconnectors. Keys are upstream's canonical ids.
var interconnectorTable = map[string][2]domain.Region{
	"NSW1-QLD1":  {domain.NSW1, domain.QLD1},
	"N-Q-MNSP1":  {domain.NSW1, domain.QLD1},
	"VIC1-NSW1":  {domain.VIC1, domain.NSW1},
	"V-SA":       {domain.VIC1, domain.SA1},
	"V-S-MNSP1":  {domain.VIC1, domain.SA1},
	"T-V-MNSP1":  {domain.TAS1, domain.VIC1},
}

// InterconnectorRegions resolves a link id to its (from, to) region pair,
// falling back to splitting on '-' when the id isn't in the fixed table
// and finally to (UNKNOWN, UNKNOWN) when that fallback doesn't yield two
// recognisable regions.
func InterconnectorRegions(linkID string) (from, to domain.Region) {
	if pair, ok := interconnectorTable[strings.ToUpper(linkID)]; ok {
		return pair[0], pair[1]
	}
	parts := strings.Split(linkID, "-")
	if len(parts) == 2 {
		return regionOrUnknown(parts[0]), regionOrUnknown(parts[1])
	}
	return "UNKNOWN", "UNKNOWN"
}

func regionOrUnknown(token string) domain.Region {
	// Upstream sometimes abbreviates the trailing "1" off a region code in
	// hyphenated ids (e.g. "V" for VIC1); normalise the common single-letter
	// forms before giving up.
	switch strings.ToUpper(token) {
	case "NSW1", "N":
		return domain.NSW1
	case "VIC1", "V":
		return domain.VIC1
	case "QLD1", "Q":
		return domain.QLD1
	case "SA1", "S":
		return domain.SA1
	case "TAS1", "T":
		return domain.TAS1
	default:
		return "UNKNOWN"
	}
}

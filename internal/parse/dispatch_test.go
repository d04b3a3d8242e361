package parse

import (
	"strings"
	"testing"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPriceRow builds a well-formed D,DISPATCH,PRICE row with RRP and
// eep/rop set, ten FCAS RRP columns, then firmness/lastchanged.
func buildPriceRow(region, settlement, rrp string, fcas [10]string) string {
	// index: 0=D 1=DISPATCH 2=PRICE 3=version 4=RUNNO 5=region 6=settlement
	// 7=rrp 8=eep 9=rop 10=unused 11..20=fcas 21=firmness 22=lastchanged
	fields := []string{"D", "DISPATCH", "PRICE", "1", "RUN1", region, settlement, rrp, "0", "0", "0"}
	fields = append(fields, fcas[:]...)
	fields = append(fields, "FIRM", "")
	return strings.Join(fields, ",")
}

func buildRegionSumRow(region, settlement, demand, avail, net string) string {
	fields := []string{"D", "DISPATCH", "REGIONSUM", "1", "RUN1", region, settlement, demand, avail, net}
	for i := 0; i < 10; i++ {
		fields = append(fields, "0")
	}
	return strings.Join(fields, ",")
}

func TestDispatchHappyPath(t *testing.T) {
	var fcas [10]string
	for i := range fcas {
		fcas[i] = "0"
	}
	bundle := strings.Join([]string{
		"I,DISPATCH,PRICE,1,header...",
		buildPriceRow("NSW1", "2025/08/23 19:05:00", "134.85637", fcas),
		buildRegionSumRow("NSW1", "2025/08/23 19:05:00", "9334.46", "11004.64", "-123.45"),
	}, "\n")

	res := Walk(SplitRows(bundle))
	require.Empty(t, res.Warnings)

	merged := MergeDispatch(res.Records)
	require.Len(t, merged.Prices, 1)
	row := merged.Prices[0]
	assert.Equal(t, domain.NSW1, row.Region)
	assert.InDelta(t, 134.85637, row.RRP, 1e-9)
	assert.InDelta(t, 9334.46, row.RegionalDemand, 1e-9)
	assert.InDelta(t, 11004.64, row.DispatchedGen, 1e-9)
}

func TestDispatchPriceClamp(t *testing.T) {
	var fcas [10]string
	for i := range fcas {
		fcas[i] = "0"
	}
	bundle := buildPriceRow("NSW1", "2025/08/23 19:05:00", "20000", fcas) + "\n" +
		buildRegionSumRow("NSW1", "2025/08/23 19:05:00", "0", "0", "0")

	res := Walk(SplitRows(bundle))
	merged := MergeDispatch(res.Records)
	require.Len(t, merged.Prices, 1)
	assert.Equal(t, domain.MaxPrice, merged.Prices[0].RRP)
	assert.True(t, merged.Prices[0].PriceCapped)
}

func TestDispatchFCASEmission(t *testing.T) {
	// Order: RaiseReg, LowerReg, Raise1Sec, Lower1Sec, Raise6Sec, Lower6Sec,
	// Raise60Sec, Lower60Sec, Raise5Min, Lower5Min.
	fcas := [10]string{"0", "0", "0", "0", "0.5", "0", "0", "0", "0", "0"}
	bundle := buildPriceRow("NSW1", "2025/08/23 19:05:00", "50", fcas) + "\n" +
		buildRegionSumRow("NSW1", "2025/08/23 19:05:00", "0", "0", "0")

	res := Walk(SplitRows(bundle))
	merged := MergeDispatch(res.Records)
	require.Len(t, merged.FCAS, 1)
	assert.Equal(t, domain.Raise6Sec, merged.FCAS[0].Service)
	assert.InDelta(t, 0.5, merged.FCAS[0].Price, 1e-9)
}

func TestInterconnectorRegionResolution(t *testing.T) {
	row := strings.Join([]string{
		"D", "DISPATCH", "INTERCONNECTORRES", "1", "RUN1",
		"NSW1-QLD1", "2025/08/23 19:05:00", "450.23", "5.67", "0", "0", "0", "0", "450.23",
	}, ",")
	res := Walk(SplitRows(row))
	merged := MergeDispatch(res.Records)
	require.Len(t, merged.Interconnectors, 1)
	assert.Equal(t, domain.NSW1, merged.Interconnectors[0].FromRegion)
	assert.Equal(t, domain.QLD1, merged.Interconnectors[0].ToRegion)

	row2 := strings.Join([]string{
		"D", "DISPATCH", "INTERCONNECTORRES", "1", "RUN1",
		"V-S-MNSP1", "2025/08/23 19:05:00", "1", "1", "0", "0", "0", "0", "1",
	}, ",")
	res2 := Walk(SplitRows(row2))
	merged2 := MergeDispatch(res2.Records)
	require.Len(t, merged2.Interconnectors, 1)
	assert.Equal(t, domain.VIC1, merged2.Interconnectors[0].FromRegion)
	assert.Equal(t, domain.SA1, merged2.Interconnectors[0].ToRegion)
}

func TestConstraintFilterDropsNonBinding(t *testing.T) {
	row := strings.Join([]string{"D", "DISPATCH", "CONSTRAINT", "1", "RUN1", "C1", "2025/08/23 19:05:00", "100", "0", "0"}, ",")
	res := Walk(SplitRows(row))
	merged := MergeDispatch(res.Records)
	assert.Empty(t, merged.Constraints)
}

func TestConstraintFilterKeepsBinding(t *testing.T) {
	row := strings.Join([]string{"D", "DISPATCH", "CONSTRAINT", "1", "RUN1", "C1", "2025/08/23 19:05:00", "100", "5.5", "1.2"}, ",")
	res := Walk(SplitRows(row))
	merged := MergeDispatch(res.Records)
	require.Len(t, merged.Constraints, 1)
	assert.Equal(t, "C1", merged.Constraints[0].ConstraintID)
	assert.Greater(t, merged.Constraints[0].MarginalValue, 0.0)
}

func TestMergeDropsPriceRowWithoutRegionSum(t *testing.T) {
	var fcas [10]string
	for i := range fcas {
		fcas[i] = "0.5"
	}
	bundle := buildPriceRow("NSW1", "2025/08/23 19:05:00", "50", fcas)

	res := Walk(SplitRows(bundle))
	merged := MergeDispatch(res.Records)
	assert.Empty(t, merged.Prices)
	assert.Empty(t, merged.FCAS)
	require.Len(t, merged.Warnings, 1)
	assert.Contains(t, merged.Warnings[0], "no REGIONSUM")
}

func TestPartialRowFailureSkipsRowNotBundle(t *testing.T) {
	var fcas [10]string
	for i := range fcas {
		fcas[i] = "0"
	}
	bad := "D,DISPATCH,PRICE,1" // too short, missing region etc.
	good := buildPriceRow("NSW1", "2025/08/23 19:05:00", "50", fcas)
	bundle := strings.Join([]string{bad, good}, "\n")

	res := Walk(SplitRows(bundle))
	require.NotEmpty(t, res.Warnings)
	require.Len(t, res.Records, 1)
}

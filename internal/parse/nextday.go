package parse

// NEXT_DAY_DISPATCH shares UNIT_SOLUTION's exact column layout with the
// intraday DISPATCHIS bundle (spec.md §4.5): it is where the end-of-day
// archive's generator solutions actually come from, since the 5-minute
// dispatch loop routinely carries zero UNIT rows.
func init() {
	register("NEXTDAYDISPATCH", "UNIT_SOLUTION", parseUnitSolution)
}

package output

// DefaultAssumptions lists the modeling assumptions shown alongside results.
var DefaultAssumptions = []string{
	"Tax brackets: 2025 federal rates and thresholds, single or married filing jointly",
	"Income is treated as taxable income: no deductions, credits or AMT",
	"Cost of a 1-point cut to every bracket: 111.3 in savings",
	"Cost of a 1-point cut to the top four brackets: 28.65 in savings (half of 57.3)",
	"Rate reduction = savings / cost per point / 100, floored so no rate goes below 0%",
	"Top four brackets are the 24%, 32%, 35% and 37% brackets",
}

package leads

// Recognized budget buckets. Priority and row highlighting key on exact
// string equality against the two premium labels; any other value, empty
// included, is a standard lead. No trimming, no case folding.
const (
	BudgetPremium = "₹10L+"
	BudgetHigh    = "₹5L - ₹10L"
)

// Priority labels as they appear in notification subjects.
const (
	PriorityHigh     = "🌟 HIGH PRIORITY"
	PriorityMedium   = "⭐ MEDIUM PRIORITY"
	PriorityStandard = "Standard"
)

// HighlightColor is the row background applied to premium-budget leads.
const HighlightColor = "#fff8dc"

// FontFamily is stamped on every appended row.
const FontFamily = "Lato"

// Tier is the classifier output: a priority label plus the banner color used
// in notification emails.
type Tier struct {
	Label string
	Color string
}

// Classify maps a raw budget string to its priority tier.
func Classify(budget string) Tier {
	switch budget {
	case BudgetPremium:
		return Tier{Label: PriorityHigh, Color: "#ffd700"}
	case BudgetHigh:
		return Tier{Label: PriorityMedium, Color: "#ffe699"}
	default:
		return Tier{Label: PriorityStandard, Color: "#f0f0f0"}
	}
}

// IsPremium reports whether budget is one of the two gold-highlight tiers.
func IsPremium(budget string) bool {
	return budget == BudgetPremium || budget == BudgetHigh
}

package templates

import (
	"fmt"
	"html/template"

	"donation-campaign-platform/internal/models"
)

var funcMap = template.FuncMap{
	"formatCents":  formatCents,
	"formatAmount": formatAmount,
	"stepTitle":    stepTitle,
}

// formatCents renders a minor-unit amount as dollars, e.g. 125000 -> "$1,250".
func formatCents(cents int) string {
	return "$" + groupThousands(cents/100)
}

// formatAmount renders a display-unit amount, dropping a trailing ".00".
func formatAmount(amount float64) string {
	if amount == float64(int(amount)) {
		return fmt.Sprintf("$%d", int(amount))
	}
	return fmt.Sprintf("$%.2f", amount)
}

func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return groupThousands(n/1000) + fmt.Sprintf(",%03d", n%1000)
}

// stepTitle returns the heading shown for a checkout step.
func stepTitle(step models.CheckoutStep) string {
	switch step {
	case models.StepAmountSelection:
		return "Choose an amount"
	case models.StepBilling:
		return "Billing Information"
	case models.StepPayment:
		return "Payment Information"
	case models.StepConfirmation:
		return "Thank you!"
	default:
		return ""
	}
}

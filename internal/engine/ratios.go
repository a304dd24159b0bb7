package engine

// DTI is the share of monthly income committed to debt, in percent. It is
// 0 when income is not positive; the compliance gate rejects that case.
func DTI(monthlyPayment, existingDebts, monthlyIncome float64) float64 {
	if monthlyIncome <= 0 {
		return 0
	}
	return (monthlyPayment + existingDebts) / monthlyIncome * 100
}

// LTV is the financed share of the gross property price, in percent.
// Transaction taxes are excluded on both sides.
func LTV(financedPropertyAmount, propertyPrice float64) float64 {
	if propertyPrice <= 0 {
		return 0
	}
	return financedPropertyAmount / propertyPrice * 100
}

package domain

import "fmt"

// PricingRule emits zero or more charge items for a returned agreement.
// New rules (discounts, surcharges) plug in without touching the policy.
type PricingRule interface {
	Charges(agreement *RentalAgreement) []ChargeItem
}

// PricingPolicy runs an ordered list of pricing rules and concatenates their
// output. Rule order is significant for display, not for the sum.
type PricingPolicy struct {
	rules []PricingRule
}

func NewPricingPolicy(rules ...PricingRule) *PricingPolicy {
	return &PricingPolicy{rules: rules}
}

// CalculateTotal collects the charges of every rule, in rule order.
func (p *PricingPolicy) CalculateTotal(agreement *RentalAgreement) []ChargeItem {
	var charges []ChargeItem
	for _, rule := range p.rules {
		charges = append(charges, rule.Charges(agreement)...)
	}
	return charges
}

// BaseDailyRateRule charges the vehicle class's daily rate per rental day.
type BaseDailyRateRule struct{}

func (BaseDailyRateRule) Charges(agreement *RentalAgreement) []ChargeItem {
	days := agreement.RentalDays()
	if days == 0 {
		return nil
	}
	class := agreement.Vehicle.VehicleClass
	return []ChargeItem{{
		Description: fmt.Sprintf("Base Rate: %s", class.Name),
		Amount:      class.BaseRate.Mul(int64(days)),
	}}
}

// PerDayAddOnRule charges each selected add-on at its daily rate.
type PerDayAddOnRule struct{}

func (PerDayAddOnRule) Charges(agreement *RentalAgreement) []ChargeItem {
	days := agreement.RentalDays()
	if days == 0 || len(agreement.Reservation.AddOns) == 0 {
		return nil
	}
	charges := make([]ChargeItem, 0, len(agreement.Reservation.AddOns))
	for _, addOn := range agreement.Reservation.AddOns {
		charges = append(charges, ChargeItem{
			Description: fmt.Sprintf("Add-on: %s", addOn.Name),
			Amount:      addOn.DailyRate.Mul(int64(days)),
		})
	}
	return charges
}

// InsuranceRule charges the selected insurance tier at its daily rate.
type InsuranceRule struct{}

func (InsuranceRule) Charges(agreement *RentalAgreement) []ChargeItem {
	days := agreement.RentalDays()
	insurance := agreement.Reservation.Insurance
	if days == 0 || insurance == nil {
		return nil
	}
	return []ChargeItem{{
		Description: fmt.Sprintf("Insurance: %s", insurance.Name),
		Amount:      insurance.DailyRate.Mul(int64(days)),
	}}
}

// StandardPricingPolicy is the default policy: base rate, add-ons, insurance.
func StandardPricingPolicy() *PricingPolicy {
	return NewPricingPolicy(BaseDailyRateRule{}, PerDayAddOnRule{}, InsuranceRule{})
}

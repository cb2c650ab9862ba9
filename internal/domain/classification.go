package domain

import "time"

// Payee is the counterparty of an income or expense.
type Payee struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate validates the payee name.
func (p *Payee) Validate() error {
	return ValidateName(p.Name)
}

// Category groups incomes and expenses for budgeting.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate validates the category name.
func (c *Category) Validate() error {
	return ValidateName(c.Name)
}

package journal

import (
	"errors"
	"strings"
)

// Validate applies the entry-form rules. The store never calls it; input
// is checked here, at the boundary, before it reaches AddTrade.
func (in TradeInput) Validate() error {
	var errs []error
	if strings.TrimSpace(in.Symbol) == "" {
		errs = append(errs, errors.New("symbol is required"))
	}
	if !in.Type.Valid() {
		errs = append(errs, errors.New("type must be buy or sell"))
	}
	if !in.EntryPrice.IsPositive() {
		errs = append(errs, errors.New("entry price must be positive"))
	}
	if !in.ExitPrice.IsPositive() {
		errs = append(errs, errors.New("exit price must be positive"))
	}
	if !in.Quantity.IsPositive() {
		errs = append(errs, errors.New("quantity must be positive"))
	}
	if in.OpenDate.IsZero() {
		errs = append(errs, errors.New("open date is required"))
	}
	if in.CloseDate.IsZero() {
		errs = append(errs, errors.New("close date is required"))
	}
	return errors.Join(errs...)
}

// Validate checks the fields a patch sets with the same rules as
// TradeInput.Validate.
func (p TradePatch) Validate() error {
	var errs []error
	if p.Symbol != nil && strings.TrimSpace(*p.Symbol) == "" {
		errs = append(errs, errors.New("symbol is required"))
	}
	if p.Type != nil && !p.Type.Valid() {
		errs = append(errs, errors.New("type must be buy or sell"))
	}
	if p.EntryPrice != nil && !p.EntryPrice.IsPositive() {
		errs = append(errs, errors.New("entry price must be positive"))
	}
	if p.ExitPrice != nil && !p.ExitPrice.IsPositive() {
		errs = append(errs, errors.New("exit price must be positive"))
	}
	if p.Quantity != nil && !p.Quantity.IsPositive() {
		errs = append(errs, errors.New("quantity must be positive"))
	}
	if p.OpenDate != nil && p.OpenDate.IsZero() {
		errs = append(errs, errors.New("open date is required"))
	}
	if p.CloseDate != nil && p.CloseDate.IsZero() {
		errs = append(errs, errors.New("close date is required"))
	}
	return errors.Join(errs...)
}

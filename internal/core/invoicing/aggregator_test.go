package invoicing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakemate/recipe_invoice_app/internal/apperrors"
	"github.com/bakemate/recipe_invoice_app/internal/core/invoicing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal { d := dec(s); return &d }

// buildDraft fills the initial empty line item and appends the rest.
func buildDraft(t *testing.T, items ...[3]string) *invoicing.Draft {
	t.Helper()
	draft := invoicing.NewDraft("owner-1")
	for i, item := range items {
		index := 0
		if i > 0 {
			index = draft.AddLineItem()
		}
		err := draft.UpdateLineItem(index, invoicing.LineItemUpdate{
			Description: strPtr(item[0]),
			Quantity:    decPtr(item[1]),
			UnitPrice:   decPtr(item[2]),
		})
		require.NoError(t, err)
	}
	return draft
}

func TestNewDraft_StartsWithOneEmptyLineItem(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")
	inv := draft.Invoice()

	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "", inv.LineItems[0].Description)
	assert.True(t, inv.LineItems[0].Quantity.Equal(dec("1")))
	assert.True(t, inv.LineItems[0].UnitPrice.IsZero())
	assert.True(t, inv.Totals.Subtotal.IsZero())
	assert.True(t, inv.Totals.GrandTotal.IsZero())
}

func TestComputeTotals_CakeAndBoxScenario(t *testing.T) {
	draft := buildDraft(t,
		[3]string{"Cake", "2", "15.00"},
		[3]string{"Box", "1", "3.50"},
	)
	require.NoError(t, draft.SetTaxRate(dec("10")))
	require.NoError(t, draft.SetDiscountAmount(dec("2.00")))

	totals := draft.ComputeTotals()
	assert.True(t, totals.Subtotal.Equal(dec("33.50")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(dec("3.35")), "tax = %s", totals.TaxAmount)
	assert.True(t, totals.DiscountAmount.Equal(dec("2.00")))
	assert.True(t, totals.GrandTotal.Equal(dec("34.85")), "grand total = %s", totals.GrandTotal)
}

func TestComputeTotals_FreeItem(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")
	require.NoError(t, draft.UpdateLineItem(0, invoicing.LineItemUpdate{
		Description: strPtr("Sample"),
		Quantity:    decPtr("1"),
		UnitPrice:   decPtr("0"),
	}))

	totals := draft.ComputeTotals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestComputeTotals_NegativeGrandTotalNotClamped(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "1", "10.00"})
	require.NoError(t, draft.SetDiscountAmount(dec("15.00")))

	totals := draft.ComputeTotals()
	assert.True(t, totals.GrandTotal.Equal(dec("-5.00")), "grand total = %s", totals.GrandTotal)

	warnings := draft.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "grandTotal", warnings[0].Field)
}

// Subtotal must be the exact sum of exact quantity*unitPrice products, with
// no rounding between steps. Three items at 0.333 * 0.10 each would drift if
// line totals were rounded before summing.
func TestComputeTotals_NoIntermediateRounding(t *testing.T) {
	draft := buildDraft(t,
		[3]string{"A", "0.333", "0.10"},
		[3]string{"B", "0.333", "0.10"},
		[3]string{"C", "0.333", "0.10"},
	)

	totals := draft.ComputeTotals()
	// Exact: 3 * 0.0333 = 0.0999, not 3 * 0.03 = 0.09.
	assert.True(t, totals.Subtotal.Equal(dec("0.0999")), "subtotal = %s", totals.Subtotal)

	// The per-item display total is rounded, independently of the sum.
	inv := draft.Invoice()
	assert.True(t, inv.LineItems[0].TotalPrice.Equal(dec("0.03")))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "3", "7.77"})
	require.NoError(t, draft.SetTaxRate(dec("7.25")))

	first := draft.ComputeTotals()
	second := draft.ComputeTotals()
	assert.Equal(t, first.Subtotal.String(), second.Subtotal.String())
	assert.Equal(t, first.TaxAmount.String(), second.TaxAmount.String())
	assert.Equal(t, first.GrandTotal.String(), second.GrandTotal.String())
}

func TestGrandTotalInvariant_AcrossMutations(t *testing.T) {
	draft := buildDraft(t,
		[3]string{"Cake", "2", "15.00"},
		[3]string{"Box", "1", "3.50"},
	)
	require.NoError(t, draft.SetTaxRate(dec("18")))
	require.NoError(t, draft.SetDiscountAmount(dec("5")))
	draft.AddLineItem()
	require.NoError(t, draft.RemoveLineItem(1))

	totals := draft.ComputeTotals()
	expected := totals.Subtotal.Add(totals.TaxAmount).Sub(totals.DiscountAmount)
	assert.True(t, totals.GrandTotal.Equal(expected))
}

func TestRemoveLineItem_LastItemRejected(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")

	err := draft.RemoveLineItem(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Len(t, draft.Invoice().LineItems, 1)
}

func TestRemoveLineItem_OutOfRange(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")
	draft.AddLineItem()

	assert.ErrorIs(t, draft.RemoveLineItem(5), apperrors.ErrValidation)
	assert.ErrorIs(t, draft.RemoveLineItem(-1), apperrors.ErrValidation)
}

func TestUpdateLineItem_InvalidFieldsLeaveStateUnchanged(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "2", "15.00"})

	tests := []struct {
		name  string
		upd   invoicing.LineItemUpdate
		field string
	}{
		{"zero quantity", invoicing.LineItemUpdate{Quantity: decPtr("0")}, "quantity"},
		{"negative quantity", invoicing.LineItemUpdate{Quantity: decPtr("-1")}, "quantity"},
		{"negative unit price", invoicing.LineItemUpdate{UnitPrice: decPtr("-0.01")}, "unitPrice"},
		{"blank description", invoicing.LineItemUpdate{Description: strPtr("   ")}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := draft.UpdateLineItem(0, tt.upd)
			require.Error(t, err)

			var vErr *apperrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Violations[0].Field)

			item := draft.Invoice().LineItems[0]
			assert.Equal(t, "Cake", item.Description)
			assert.True(t, item.Quantity.Equal(dec("2")))
			assert.True(t, item.UnitPrice.Equal(dec("15.00")))
		})
	}
}

func TestUpdateLineItem_AtomicWhenMixedValidity(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "2", "15.00"})

	// Valid description alongside an invalid quantity: nothing may apply.
	err := draft.UpdateLineItem(0, invoicing.LineItemUpdate{
		Description: strPtr("Bigger Cake"),
		Quantity:    decPtr("-3"),
	})
	require.Error(t, err)
	assert.Equal(t, "Cake", draft.Invoice().LineItems[0].Description)
}

func TestUpdateLineItem_ListsAllOffendingFields(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")

	err := draft.UpdateLineItem(0, invoicing.LineItemUpdate{
		Description: strPtr(""),
		Quantity:    decPtr("0"),
		UnitPrice:   decPtr("-1"),
	})
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 3)
}

func TestSetTaxRateAndDiscount_RejectNegative(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")

	assert.ErrorIs(t, draft.SetTaxRate(dec("-1")), apperrors.ErrValidation)
	assert.ErrorIs(t, draft.SetDiscountAmount(dec("-0.01")), apperrors.ErrValidation)
}

func TestSetCurrency(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "2", "15.00"})

	require.NoError(t, draft.SetCurrency("EUR"))
	assert.Equal(t, "EUR", draft.Invoice().CurrencyCode)

	// Amounts are never converted on a currency change.
	assert.True(t, draft.ComputeTotals().Subtotal.Equal(dec("30.00")))

	assert.ErrorIs(t, draft.SetCurrency("XXX"), apperrors.ErrValidation)
	assert.Equal(t, "EUR", draft.Invoice().CurrencyCode)
}

func TestSetHeader_DueDateBeforeIssueDateRejected(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")
	inv := draft.Invoice()

	due := inv.IssueDate.AddDate(0, 0, -1)
	err := draft.SetHeader(invoicing.HeaderUpdate{DueDate: &due})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, draft.Invoice().DueDate)

	due = inv.IssueDate.AddDate(0, 0, 14)
	require.NoError(t, draft.SetHeader(invoicing.HeaderUpdate{DueDate: &due}))
	require.NotNil(t, draft.Invoice().DueDate)

	require.NoError(t, draft.SetHeader(invoicing.HeaderUpdate{ClearDueDate: true}))
	assert.Nil(t, draft.Invoice().DueDate)
}

func TestFromInvoice_RecomputesStaleTotals(t *testing.T) {
	draft := buildDraft(t, [3]string{"Cake", "2", "15.00"})
	inv := draft.Invoice()
	inv.Totals.GrandTotal = dec("999") // stored record gone stale

	reloaded, err := invoicing.FromInvoice(inv)
	require.NoError(t, err)
	assert.True(t, reloaded.Invoice().Totals.GrandTotal.Equal(dec("30.00")))
}

func TestFromInvoice_RejectsZeroLineItems(t *testing.T) {
	draft := invoicing.NewDraft("owner-1")
	inv := draft.Invoice()
	inv.LineItems = nil

	_, err := invoicing.FromInvoice(inv)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain integer", "12", "12", false},
		{"decimal", "12.345", "12.345", false},
		{"whitespace", "  7.50  ", "7.5", false},
		{"blank means zero", "", "0", false},
		{"only spaces means zero", "   ", "0", false},
		{"negative accepted here", "-3", "-3", false},
		{"garbage", "12abc", "", true},
		{"comma", "1,5", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invoicing.ParseAmount("amount", tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}
}

package persistence

import "strings"

// defaultSortColumn orders every listing newest first unless asked otherwise
const defaultSortColumn = "created_at"

// SortFields is the set of columns a listing may be ordered by. Anything
// outside the set never reaches the ORDER BY clause.
type SortFields map[string]struct{}

// sortable builds a SortFields that always contains created_at
func sortable(columns ...string) SortFields {
	fields := SortFields{defaultSortColumn: {}}
	for _, c := range columns {
		fields[c] = struct{}{}
	}
	return fields
}

// Column returns requested when it is whitelisted, created_at otherwise
func (f SortFields) Column(requested string) string {
	requested = strings.TrimSpace(requested)
	if _, ok := f[requested]; ok && requested != "" {
		return requested
	}
	return defaultSortColumn
}

// sortDirection only lets "asc" (any case) through; everything else is DESC
func sortDirection(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// orderClause renders a safe ORDER BY expression for the filter
func orderClause(orderBy, orderDir string, fields SortFields) string {
	return fields.Column(orderBy) + " " + sortDirection(orderDir)
}

var (
	CommonSortFields   = sortable("updated_at")
	UserSortFields     = sortable("updated_at", "email", "full_name", "role", "status")
	ProductSortFields  = sortable("updated_at", "name", "price", "sku", "status")
	OrderSortFields    = sortable("updated_at", "total_price", "status", "customer_name", "source", "payment_method")
	ShipmentSortFields = sortable("updated_at", "status", "recipient_name")
	CustomerSortFields = sortable("updated_at", "full_name", "email", "total_spent", "orders_count", "loyalty_points", "last_purchase_date")

	// LedgerSortFields covers expenses, incomes, receivables and payroll rows
	LedgerSortFields = sortable("updated_at", "amount", "due_date", "status", "category", "description", "client_name", "name", "base_salary")

	// SettingsSortFields covers tax rates and shipping options
	SettingsSortFields = sortable("name", "rate", "cost")
	PageSortFields     = sortable("updated_at", "slug", "title")
)

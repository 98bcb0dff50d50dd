package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortDirection(t *testing.T) {
	for input, want := range map[string]string{
		"":            "DESC",
		"asc":         "ASC",
		" ASC ":       "ASC",
		"Asc":         "ASC",
		"desc":        "DESC",
		"ascending":   "DESC",
		"asc; DELETE": "DESC",
	} {
		assert.Equal(t, want, sortDirection(input), "input %q", input)
	}
}

func TestSortFields_Column(t *testing.T) {
	tests := []struct {
		name      string
		fields    SortFields
		requested string
		expected  string
	}{
		{"whitelisted order column", OrderSortFields, "total_price", "total_price"},
		{"whitelisted with padding", ProductSortFields, "  price ", "price"},
		{"empty falls back to newest first", OrderSortFields, "", "created_at"},
		{"column of another listing", ProductSortFields, "total_price", "created_at"},
		{"case sensitive", CustomerSortFields, "TOTAL_SPENT", "created_at"},
		{"created_at always allowed", SettingsSortFields, "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fields.Column(tt.requested))
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "total_spent ASC", orderClause("total_spent", "asc", CustomerSortFields))
	assert.Equal(t, "created_at DESC", orderClause("", "", PageSortFields))
	assert.Equal(t, "due_date DESC", orderClause("due_date", "sideways", LedgerSortFields))
}

func TestOrderClause_RejectsInjectedSQL(t *testing.T) {
	payloads := []string{
		"total_price; DROP TABLE orders;--",
		"total_price' OR '1'='1",
		"(SELECT password_hash FROM users)",
		"total_price\n; DELETE FROM products",
		"status, (SELECT 1)",
	}
	for _, p := range payloads {
		assert.Equal(t, "created_at DESC", orderClause(p, p, OrderSortFields), "payload %q", p)
	}
}

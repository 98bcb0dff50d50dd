package studio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShopPage(t *testing.T) {
	tenantID := uuid.New()

	p, err := NewShopPage(tenantID, " Home ", nil)
	require.NoError(t, err)
	assert.Equal(t, "home", p.PageKey)
	assert.NotNil(t, p.SchemaData)

	_, err = NewShopPage(tenantID, "bad key!", nil)
	assert.Error(t, err)

	p.Replace(Schema{"sections": []interface{}{"hero"}})
	assert.Contains(t, p.SchemaData, "sections")
}

func TestEmptyShopPage(t *testing.T) {
	tenantID := uuid.New()
	p := EmptyShopPage(tenantID, "home")

	assert.Equal(t, uuid.Nil, p.ID)
	assert.Empty(t, p.SchemaData)
	assert.Equal(t, tenantID, p.TenantID)
}

func TestPage_Update(t *testing.T) {
	p, err := NewPage(uuid.New(), "sobre-nosotros", "Sobre nosotros", nil)
	require.NoError(t, err)

	assert.Error(t, p.Update("sobre-nosotros", "", nil))
	assert.Error(t, p.Update("", "Title", nil))
	require.NoError(t, p.Update("faq", "Preguntas", map[string]interface{}{"body": "..."}))
	assert.Equal(t, "faq", p.Slug)
}

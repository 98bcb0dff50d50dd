package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteHTML(t *testing.T) {
	wrapped := completeHTML(&RenderRequest{HTML: "<p>hola</p>", Title: "Recibo"})
	assert.Contains(t, wrapped, "<!DOCTYPE html>")
	assert.Contains(t, wrapped, `<meta charset="UTF-8">`)
	assert.Contains(t, wrapped, "<title>Recibo</title>")
	assert.Contains(t, wrapped, "<body><p>hola</p></body>")

	full := "<!doctype html><html><body>x</body></html>"
	assert.Equal(t, full, completeHTML(&RenderRequest{HTML: full}))
}

func TestPaperOrDefault(t *testing.T) {
	assert.Equal(t, A4, paperOrDefault(Paper{}))
	custom := Paper{Width: 3.15, Height: 11, Margin: 0.1}
	assert.Equal(t, custom, paperOrDefault(custom))
}

func TestCountPages(t *testing.T) {
	pdf := []byte("<< /Type /Pages /Count 2 >> << /Type /Page >> << /Type /Page >>")
	assert.Equal(t, 2, countPages(pdf))
	assert.Equal(t, 1, countPages([]byte("garbage")))
}

func TestChromedpRenderer_RejectsEmptyHTML(t *testing.T) {
	r := &ChromedpRenderer{}
	_, err := r.Render(context.Background(), &RenderRequest{HTML: "   "})

	var renderErr *RenderError
	assert.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	assert.NoError(t, r.Close())
}

package printing

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/bayup/backend/internal/domain/sales"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>Recibo #{{.Ref}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #1f2937; font-size: 12px; }
h1 { color: #004d4d; font-size: 20px; margin: 0; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { padding: 6px 4px; border-bottom: 1px solid #e5e7eb; text-align: left; }
.num { text-align: right; }
.totals td { border: none; }
</style></head>
<body>
<h1>{{.Store}}</h1>
<p>Recibo <strong>#{{.Ref}}</strong> &middot; {{.Date}}</p>
<p>Cliente: {{.Customer}}{{if .Email}} ({{.Email}}){{end}}<br>Pago: {{.PaymentMethod}} &middot; Canal: {{.Source}}{{if .Seller}} &middot; Vendedor: {{.Seller}}{{end}}</p>
<table>
<tr><th>Producto</th><th class="num">Cant.</th><th class="num">Precio</th><th class="num">Subtotal</th></tr>
{{range .Lines}}<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">${{.Price}}</td><td class="num">${{.Subtotal}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td class="num">Subtotal</td><td class="num">${{.Subtotal}}</td></tr>
{{if .Shipping}}<tr><td class="num">Envío</td><td class="num">${{.Shipping}}</td></tr>{{end}}
{{if .Tax}}<tr><td class="num">Impuestos</td><td class="num">${{.Tax}}</td></tr>{{end}}
<tr><td class="num"><strong>Total</strong></td><td class="num"><strong>${{.Total}}</strong></td></tr>
</table>
{{if .Notes}}<p>{{.Notes}}</p>{{end}}
<p style="text-align:center;color:#6b7280;margin-top:24px;">Gracias por tu compra</p>
</body></html>`))

type receiptLine struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

type receiptView struct {
	Store         string
	Ref           string
	Date          string
	Customer      string
	Email         string
	PaymentMethod string
	Source        string
	Seller        string
	Lines         []receiptLine
	Subtotal      string
	Shipping      string
	Tax           string
	Total         string
	Notes         string
}

// ReceiptRenderer renders order receipts as PDF
type ReceiptRenderer struct {
	pdf   PDFRenderer
	paper Paper
}

// NewReceiptRenderer creates a ReceiptRenderer; paperWidth is in inches and
// zero selects A4
func NewReceiptRenderer(pdf PDFRenderer, paperWidth float64) *ReceiptRenderer {
	paper := A4
	if paperWidth > 0 {
		paper.Width = paperWidth
	}
	return &ReceiptRenderer{pdf: pdf, paper: paper}
}

// RenderReceipt renders the order as a PDF receipt
func (r *ReceiptRenderer) RenderReceipt(ctx context.Context, order *sales.Order, storeName string) ([]byte, error) {
	html, err := ReceiptHTML(order, storeName)
	if err != nil {
		return nil, err
	}
	result, err := r.pdf.Render(ctx, &RenderRequest{
		HTML:  html,
		Title: "Recibo #" + order.ShortID(),
		Paper: r.paper,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// ReceiptHTML renders the receipt document of an order
func ReceiptHTML(order *sales.Order, storeName string) (string, error) {
	if storeName == "" {
		storeName = "Bayup"
	}
	view := receiptView{
		Store:         storeName,
		Ref:           order.ShortID(),
		Date:          order.CreatedAt.Format("02/01/2006 15:04"),
		Customer:      order.CustomerName,
		Email:         order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
		Source:        order.Source,
		Seller:        order.SellerName,
		Subtotal:      order.Subtotal().StringFixed(2),
		Total:         order.TotalPrice.StringFixed(2),
		Notes:         order.Notes,
	}
	if order.CreatedAt.IsZero() {
		view.Date = time.Now().Format("02/01/2006 15:04")
	}
	if view.Customer == "" {
		view.Customer = "Consumidor final"
	}
	if order.ShippingCost.IsPositive() {
		view.Shipping = order.ShippingCost.StringFixed(2)
	}
	if order.TaxAmount.IsPositive() {
		view.Tax = order.TaxAmount.StringFixed(2)
	}
	for i := range order.Items {
		item := &order.Items[i]
		view.Lines = append(view.Lines, receiptLine{
			Name:     item.DisplayName(),
			Quantity: item.Quantity,
			Price:    item.PriceAtPurchase.StringFixed(2),
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

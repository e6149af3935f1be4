package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/takkat/storefront/internal/orders/domain"
)

var emailTmpl = template.Must(template.New("order-confirmation").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"lineTotal": func(item domain.OrderItem) string {
		return fmt.Sprintf("%.2f", item.Price*float64(item.Quantity))
	},
}).Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px; background-color: #f9f9f9;">
  <h1 style="color: #333; text-align: center; margin-bottom: 20px;">Order Confirmation #{{.Order.ID}}</h1>

  <div style="background-color: #fff; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #444; margin-bottom: 15px;">Order Information</h2>
    <p style="margin: 5px 0;"><strong>Name:</strong> {{.Order.FullName}}</p>
    <p style="margin: 5px 0;"><strong>Email:</strong> {{.Order.Email}}</p>
    <p style="margin: 5px 0;"><strong>Phone:</strong> {{.Order.PhoneNumber}}</p>
    <p style="margin: 5px 0;"><strong>Shipping Address:</strong> {{.Order.ShippingAddress}}</p>
  </div>

  <div style="background-color: #fff; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #444; margin-bottom: 15px;">Ordered Items</h2>
    {{range .Order.Items}}
    <div style="border-bottom: 1px solid #eee; padding: 10px 0;">
      <div style="display: flex; align-items: center; gap: 10px;">
        <img src="{{.Image}}" alt="{{.Name}}" style="width: 50px; height: 50px; object-fit: cover; border-radius: 4px;" />
        <div>
          <p style="margin: 5px 0; font-weight: bold;">{{.Name}}</p>
          <p style="margin: 5px 0; color: #666;">
            Quantity: {{.Quantity}}{{if .Color}} | Color: {{.Color}}{{end}}{{if .Size}} | Size: {{.Size}}{{end}}
          </p>
        </div>
        <p style="margin: 5px 0; font-weight: bold; margin-left: auto;">&#8362;{{lineTotal .}}</p>
      </div>
    </div>
    {{end}}
  </div>

  <div style="background-color: #fff; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #444; margin-bottom: 15px;">Order Summary</h2>
    <div style="display: flex; justify-content: space-between; margin: 10px 0;">
      <span>Subtotal:</span>
      <span>&#8362;{{money .Order.Subtotal}}</span>
    </div>
    <div style="display: flex; justify-content: space-between; margin: 10px 0;">
      <span>Delivery Fee:</span>
      <span>&#8362;{{money .Order.DeliveryFee}}</span>
    </div>
    {{if gt .Order.Discount 0.0}}
    <div style="display: flex; justify-content: space-between; margin: 10px 0; color: #22c55e;">
      <span>Discount:</span>
      <span>-&#8362;{{money .Order.Discount}}</span>
    </div>
    {{end}}
    <div style="display: flex; justify-content: space-between; margin: 10px 0; font-weight: bold; font-size: 1.1em;">
      <span>Total:</span>
      <span>&#8362;{{money .Order.Total}}</span>
    </div>
  </div>

  <div style="text-align: center; margin: 30px 0;">
    <p style="margin-bottom: 10px;">You can follow your order status here:</p>
    <a href="{{.SiteURL}}/orders/{{.Order.ID}}"
       style="display: inline-block; background-color: #000; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 4px;">
      Track Order
    </a>
  </div>

  <div style="text-align: center; color: #666; margin-top: 30px;">
    <p>Thank you for ordering from Takkat.</p>
    <p>If you have any questions, please get in touch.</p>
  </div>
</div>
`))

func orderEmailBody(order *domain.Order, siteURL string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Order   *domain.Order
		SiteURL string
	}{Order: order, SiteURL: siteURL}

	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

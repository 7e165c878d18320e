package notifications

import (
	"html/template"
)

var customerOrderTmpl = template.Must(template.New("customer_order").Parse(`
<h2>Thank you for your order, {{.Username}}!</h2>
<p>Your order <strong>{{.OrderID}}</strong> has been placed successfully.</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Product</th><th>Quantity</th><th>Price</th></tr>
  {{range .Items}}
  <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>&#8377;{{printf "%.2f" .Price}}</td></tr>
  {{end}}
</table>
<p><strong>Total: &#8377;{{printf "%.2f" .Total}}</strong></p>
<p>Payment method: {{.PaymentMethod}}</p>
<h3>Shipping to</h3>
<p>
  {{.Address.FullName}}<br>
  {{.Address.Address}}<br>
  {{.Address.City}}, {{.Address.State}} {{.Address.Pincode}}<br>
  Phone: {{.Address.Phone}}
</p>
<p>We will notify you when your order ships.</p>
`))

var adminOrderTmpl = template.Must(template.New("admin_order").Parse(`
<h2>New order received</h2>
<p>Order <strong>{{.OrderID}}</strong> was placed by {{.Username}} ({{.Email}}).</p>
<table border="1" cellpadding="6" cellspacing="0">
  <tr><th>Product</th><th>Quantity</th><th>Price</th></tr>
  {{range .Items}}
  <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>&#8377;{{printf "%.2f" .Price}}</td></tr>
  {{end}}
</table>
<p><strong>Total: &#8377;{{printf "%.2f" .Total}}</strong></p>
<p>Payment method: {{.PaymentMethod}}</p>
<h3>Deliver to</h3>
<p>
  {{.Address.FullName}}<br>
  {{.Address.Address}}<br>
  {{.Address.City}}, {{.Address.State}} {{.Address.Pincode}}<br>
  Phone: {{.Address.Phone}}
</p>
`))

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<h2>Order confirmation</h2>
<p>Your order <strong>{{.OrderID}}</strong> is confirmed.</p>
<ul>
  {{range .Products}}
  <li>{{.Name}} &times; {{.Quantity}}</li>
  {{end}}
</ul>
<p><strong>Total: &#8377;{{printf "%.2f" .Total}}</strong></p>
{{if .EstimatedDelivery}}<p>Estimated delivery: {{.EstimatedDelivery}}</p>{{end}}
`))

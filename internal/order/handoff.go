package order

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"text/template"

	"github.com/MikeMC777/ordenes-skincare/internal/apperr"
	"github.com/MikeMC777/ordenes-skincare/internal/money"
)

// handoffTemplate is the message the operator receives on WhatsApp. Output
// depends only on the order and its items, so regenerating it later yields
// the same bytes.
const handoffTemplate = `*NUEVO PEDIDO* #{{short .Order.ID}}

*Cliente:* {{.Order.Customer.FullName}}
*DNI:* {{.Order.Customer.DNI}}
*Teléfono:* {{.Order.Customer.Phone}}
*Dirección:* {{.Order.Customer.Address}}
*Ubicación:* {{.Order.Customer.Province}}, {{.Order.Customer.Department}}

*Productos:*
{{- range .Items}}
- {{.ProductName}} × {{.Quantity}} — {{soles .LineTotal}}
{{- end}}

*Envío:* {{.Order.Zone.Label}} / {{.Order.Modality.Label}}
*Costo de envío:* {{soles .Order.ShippingCost}}
*Tiempo estimado:* {{.Order.EstimatedDays}}

*Subtotal:* {{soles .Order.Subtotal}}
*TOTAL:* {{soles .Order.Total}}`

var handoffTmpl = template.Must(template.New("handoff").Funcs(template.FuncMap{
	"soles": func(m money.Money) string { return "S/ " + m.String() },
	"short": func(id string) string {
		if len(id) > 8 {
			return strings.ToUpper(id[:8])
		}
		return strings.ToUpper(id)
	},
}).Parse(handoffTemplate))

// uriComponent turns url.QueryEscape output into JavaScript's
// encodeURIComponent form.
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

type HandoffBuilder struct {
	phone string
}

// NewHandoffBuilder keeps only the digits of phone (e.g. "+51 999 999 999").
func NewHandoffBuilder(phone string) *HandoffBuilder {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return &HandoffBuilder{phone: digits}
}

func (b *HandoffBuilder) Message(o *Order, items []Item) (string, error) {
	var sb strings.Builder
	err := handoffTmpl.Execute(&sb, struct {
		Order *Order
		Items []Item
	}{o, SortItems(items)})
	if err != nil {
		return "", fmt.Errorf("order.HandoffBuilder.Message: %w: %w", apperr.ErrHandoff, err)
	}
	return sb.String(), nil
}

func (b *HandoffBuilder) Link(msg string) (string, error) {
	if len(b.phone) < 8 {
		return "", fmt.Errorf("order.HandoffBuilder.Link: %w: operator phone %q is not a WhatsApp number", apperr.ErrHandoff, b.phone)
	}
	return "https://wa.me/" + b.phone + "?text=" + uriComponent.Replace(url.QueryEscape(msg)), nil
}

// SortItems returns items ordered by product name, then product id, the
// order the repository reads them back in.
func SortItems(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b Item) int {
		if c := strings.Compare(a.ProductName, b.ProductName); c != 0 {
			return c
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	return out
}

// Build renders the message and wraps it into the wa.me deep link.
func (b *HandoffBuilder) Build(o *Order, items []Item) (msg, link string, err error) {
	msg, err = b.Message(o, items)
	if err != nil {
		return "", "", err
	}
	link, err = b.Link(msg)
	if err != nil {
		return msg, "", err
	}
	return msg, link, nil
}

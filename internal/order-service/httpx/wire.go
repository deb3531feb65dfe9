package httpx

import (
	"strconv"
	"strings"

	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
)

// Hand-rolled wire encoding; monetary fields always carry exactly two
// fractional digits.

func encodeOrder(order *domain.Order) string {
	var sb strings.Builder
	sb.WriteString(`{"orderId":"`)
	sb.WriteString(jsonwire.EscapeString(order.OrderID))
	sb.WriteString(`","items":[`)
	for i, item := range order.Items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(encodeItem(item))
	}
	sb.WriteString(`],"total":`)
	sb.WriteString(jsonwire.FormatPrice(order.Total))
	sb.WriteString(`}`)
	return sb.String()
}

func encodeItem(item domain.Item) string {
	var sb strings.Builder
	sb.WriteString(`{"productId":`)
	sb.WriteString(strconv.Itoa(item.ProductID))
	sb.WriteString(`,"name":"`)
	sb.WriteString(jsonwire.EscapeString(item.Name))
	sb.WriteString(`","price":`)
	sb.WriteString(jsonwire.FormatPrice(item.UnitPrice))
	sb.WriteString(`,"quantity":`)
	sb.WriteString(strconv.Itoa(item.Quantity))
	sb.WriteString(`,"subtotal":`)
	sb.WriteString(jsonwire.FormatPrice(item.Subtotal))
	sb.WriteString(`}`)
	return sb.String()
}

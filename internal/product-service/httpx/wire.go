package httpx

import (
	"strconv"
	"strings"

	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
	"github.com/ecomdemo/shop/internal/product-service/domain"
)

// Wire encoding is hand-rolled on top of the jsonwire helpers; the order
// service decodes these bodies with jsonwire.ParseObject.

func encodeProduct(p domain.Product) string {
	var sb strings.Builder
	sb.WriteString(`{ "id": `)
	sb.WriteString(strconv.Itoa(p.ID))
	sb.WriteString(`, "name": "`)
	sb.WriteString(jsonwire.EscapeString(p.Name))
	sb.WriteString(`", "price": `)
	sb.WriteString(jsonwire.FormatPrice(p.Price))
	sb.WriteString(` }`)
	return sb.String()
}

func encodeProductList(products []domain.Product) string {
	parts := make([]string, len(products))
	for i, p := range products {
		parts[i] = encodeProduct(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

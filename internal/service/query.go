package service

import (
	"fmt"
	"strings"

	"homematch/internal/model"
	"homematch/internal/utils"
)

// BuildQuery turns a structured filter selection into one natural-language
// sentence suitable as a semantic search query. Fragments are appended in a
// fixed order (neighborhoods, price, bedrooms, bathrooms, house size, free
// text), joined with ", " and terminated with a period. An entirely empty
// selection yields the degenerate query "." rather than an error.
func BuildQuery(sel *model.FilterSelection) string {
	if sel == nil {
		return "."
	}

	var parts []string

	if len(sel.Neighborhoods) > 0 {
		parts = append(parts, "in "+strings.Join(sel.Neighborhoods, ", "))
	}
	if sel.PriceMin > 0 || sel.PriceMax > 0 {
		parts = append(parts, fmt.Sprintf("priced between $%s and $%s",
			utils.GroupThousands(sel.PriceMin), utils.GroupThousands(sel.PriceMax)))
	}
	if len(sel.Bedrooms) > 0 {
		beds := make([]string, len(sel.Bedrooms))
		for i, b := range sel.Bedrooms {
			beds[i] = fmt.Sprintf("%d", b)
		}
		parts = append(parts, fmt.Sprintf("having %s bedrooms", strings.Join(beds, " or ")))
	}
	if len(sel.Bathrooms) > 0 {
		baths := make([]string, len(sel.Bathrooms))
		for i, b := range sel.Bathrooms {
			baths[i] = utils.FormatDecimal(b)
		}
		parts = append(parts, fmt.Sprintf("having %s bathrooms", strings.Join(baths, " or ")))
	}
	if sel.HouseSizeMin > 0 || sel.HouseSizeMax > 0 {
		parts = append(parts, fmt.Sprintf("with house size between %d and %d sqft",
			sel.HouseSizeMin, sel.HouseSizeMax))
	}
	if strings.TrimSpace(sel.Extra) != "" {
		parts = append(parts, "that "+strings.TrimSpace(sel.Extra))
	}

	return strings.Join(parts, ", ") + "."
}

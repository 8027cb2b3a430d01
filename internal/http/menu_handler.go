package http

import (
	"net/http"

	"github.com/naturescrunch/storefront/internal/menu"
	"github.com/naturescrunch/storefront/pkg/money"
)

type MenuHandler struct {
	catalog *menu.Catalog
}

func NewMenuHandler(catalog *menu.Catalog) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

type MenuItemDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
}

type MenuSectionDTO struct {
	Name  string        `json:"name"`
	Items []MenuItemDTO `json:"items"`
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	sections := h.catalog.Sections()

	out := make([]MenuSectionDTO, 0, len(sections))
	for _, s := range sections {
		items := make([]MenuItemDTO, 0, len(s.Items))
		for _, item := range s.Items {
			items = append(items, MenuItemDTO{
				ID:           item.ID,
				Name:         item.Name,
				Description:  item.Description,
				Price:        item.Price,
				PriceDisplay: money.Format(item.Price),
			})
		}
		out = append(out, MenuSectionDTO{Name: s.Name, Items: items})
	}

	respondJSON(w, http.StatusOK, out)
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"salesengine/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the core error taxonomy onto HTTP status codes:
// unknown ids are 404, degenerate populations 422, bad parameters 400.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrEmptyPopulation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidArgument), errors.Is(err, core.ErrInvalidAmount):
		status = http.StatusBadRequest
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

type merchantJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type itemJSON struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MerchantID int64  `json:"merchant_id"`
	UnitPrice  string `json:"unit_price"`
}

type merchantListResponse struct {
	Count     int            `json:"count"`
	Merchants []merchantJSON `json:"merchants"`
}

type itemListResponse struct {
	Count int        `json:"count"`
	Items []itemJSON `json:"items"`
}

type statsResponse struct {
	AverageItemsPerMerchant          float64 `json:"average_items_per_merchant"`
	AverageItemsPerMerchantStdDev    float64 `json:"average_items_per_merchant_std_dev"`
	AverageInvoicesPerMerchant       float64 `json:"average_invoices_per_merchant"`
	AverageInvoicesPerMerchantStdDev float64 `json:"average_invoices_per_merchant_std_dev"`
	AverageInvoicesPerDay            float64 `json:"average_invoices_per_day"`
	AverageInvoicesPerDayStdDev      float64 `json:"average_invoices_per_day_std_dev"`
	AverageAveragePricePerMerchant   string  `json:"average_average_price_per_merchant"`
}

type averagePriceResponse struct {
	MerchantID       int64  `json:"merchant_id"`
	AverageItemPrice string `json:"average_item_price"`
}

type merchantRevenueResponse struct {
	MerchantID int64  `json:"merchant_id"`
	Revenue    string `json:"revenue"`
}

type merchantItemResponse struct {
	MerchantID int64    `json:"merchant_id"`
	Item       itemJSON `json:"item"`
}

type statusPercentageResponse struct {
	Status     string  `json:"status"`
	Percentage float64 `json:"percentage"`
}

type topDaysResponse struct {
	Days []string `json:"days"`
}

type invoiceTotalResponse struct {
	InvoiceID int64  `json:"invoice_id"`
	Total     string `json:"total"`
}

type invoicePaidResponse struct {
	InvoiceID int64 `json:"invoice_id"`
	Paid      bool  `json:"paid"`
}

type dateRevenueResponse struct {
	Date    string `json:"date"`
	Revenue string `json:"revenue"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type readyResponse struct {
	Status       string `json:"status"`
	Merchants    int    `json:"merchants"`
	Items        int    `json:"items"`
	Invoices     int    `json:"invoices"`
	InvoiceItems int    `json:"invoice_items"`
	Transactions int    `json:"transactions"`
	Customers    int    `json:"customers"`
}

func toMerchantJSON(merchants []core.Merchant) merchantListResponse {
	out := make([]merchantJSON, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, merchantJSON{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return merchantListResponse{Count: len(out), Merchants: out}
}

func toItemJSON(it core.Item) itemJSON {
	return itemJSON{
		ID:         it.ID,
		Name:       it.Name,
		MerchantID: it.MerchantID,
		UnitPrice:  core.FormatPrice(it.UnitPrice),
	}
}

func toItemListJSON(items []core.Item) itemListResponse {
	out := make([]itemJSON, 0, len(items))
	for _, it := range items {
		out = append(out, toItemJSON(it))
	}
	return itemListResponse{Count: len(out), Items: out}
}

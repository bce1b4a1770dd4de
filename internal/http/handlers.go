package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salesengine/internal/analyst"
	"salesengine/internal/cache"
	"salesengine/internal/core"
	"salesengine/internal/log"
	"salesengine/internal/store"
)

// Handler exposes every analyst query as a JSON endpoint. Successful
// responses are cached by request URI; the dataset only changes through
// explicit store writes, so a short TTL keeps results fresh enough.
type Handler struct {
	analyst *analyst.Analyst
	dataset *store.Dataset
	logger  *log.Logger
	cache   *cache.LRUCache[any]
}

func NewHandler(ds *store.Dataset, a *analyst.Analyst, logger *log.Logger, responseCache *cache.LRUCache[any]) *Handler {
	return &Handler{
		analyst: a,
		dataset: ds,
		logger:  logger.WithComponent(log.ComponentHTTP),
		cache:   responseCache,
	}
}

// respond serves from the response cache when possible, computing and
// caching the payload otherwise. Errors are never cached.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, compute func() (any, error)) {
	key := r.URL.RequestURI()
	if payload, ok := h.cache.Get(key); ok {
		h.logger.DebugContext(r.Context(), "cache hit", log.FieldCacheKey, key)
		render.JSON(w, r, payload)
		return
	}

	payload, err := compute()
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.cache.Set(key, payload)
	render.JSON(w, r, payload)
}

func urlID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q: %w", raw, core.ErrInvalidArgument)
	}
	return id, nil
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok"})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, readyResponse{
		Status:       "ok",
		Merchants:    h.dataset.Merchants.Len(),
		Items:        h.dataset.Items.Len(),
		Invoices:     h.dataset.Invoices.Len(),
		InvoiceItems: h.dataset.InvoiceItems.Len(),
		Transactions: h.dataset.Transactions.Len(),
		Customers:    h.dataset.Customers.Len(),
	})
}

func (h *Handler) merchantStats(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		avgItems, err := h.analyst.AverageItemsPerMerchant()
		if err != nil {
			return nil, err
		}
		itemsSD, err := h.analyst.AverageItemsPerMerchantStandardDeviation()
		if err != nil {
			return nil, err
		}
		avgInvoices, err := h.analyst.AverageInvoicesPerMerchant()
		if err != nil {
			return nil, err
		}
		invoicesSD, err := h.analyst.AverageInvoicesPerMerchantStandardDeviation()
		if err != nil {
			return nil, err
		}
		avgPerDay, err := h.analyst.AverageInvoicesPerDay()
		if err != nil {
			return nil, err
		}
		perDaySD, err := h.analyst.AverageInvoicesPerDayStandardDeviation()
		if err != nil {
			return nil, err
		}
		avgAvgPrice, err := h.analyst.AverageAveragePricePerMerchant()
		if err != nil {
			return nil, err
		}
		return statsResponse{
			AverageItemsPerMerchant:          avgItems,
			AverageItemsPerMerchantStdDev:    itemsSD,
			AverageInvoicesPerMerchant:       avgInvoices,
			AverageInvoicesPerMerchantStdDev: invoicesSD,
			AverageInvoicesPerDay:            avgPerDay,
			AverageInvoicesPerDayStdDev:      perDaySD,
			AverageAveragePricePerMerchant:   core.FormatPrice(avgAvgPrice),
		}, nil
	})
}

func (h *Handler) merchantsWithHighItemCount(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		merchants, err := h.analyst.MerchantsWithHighItemCount()
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) topMerchantsByInvoiceCount(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		merchants, err := h.analyst.TopMerchantsByInvoiceCount()
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) bottomMerchantsByInvoiceCount(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		merchants, err := h.analyst.BottomMerchantsByInvoiceCount()
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) merchantsWithOnlyOneItem(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		var merchants []core.Merchant
		var err error
		if month := r.URL.Query().Get("month"); month != "" {
			merchants, err = h.analyst.MerchantsWithOnlyOneItemRegisteredInMonth(month)
		} else {
			merchants, err = h.analyst.MerchantsWithOnlyOneItem()
		}
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) merchantsWithPendingInvoices(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		merchants, err := h.analyst.MerchantsWithPendingInvoices()
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) topRevenueEarners(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		n := 20
		if raw := r.URL.Query().Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("bad count %q: %w", raw, core.ErrInvalidArgument)
			}
			n = parsed
		}
		merchants, err := h.analyst.TopRevenueEarners(n)
		if err != nil {
			return nil, err
		}
		return toMerchantJSON(merchants), nil
	})
}

func (h *Handler) averageItemPrice(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		avg, err := h.analyst.AverageItemPriceForMerchant(id)
		if err != nil {
			return nil, err
		}
		return averagePriceResponse{MerchantID: id, AverageItemPrice: avg.String()}, nil
	})
}

func (h *Handler) merchantRevenue(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		revenue, err := h.analyst.RevenueByMerchant(id)
		if err != nil {
			return nil, err
		}
		return merchantRevenueResponse{MerchantID: id, Revenue: core.FormatPrice(revenue)}, nil
	})
}

func (h *Handler) mostSoldItem(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		item, err := h.analyst.MostSoldItemForMerchant(id)
		if err != nil {
			return nil, err
		}
		return merchantItemResponse{MerchantID: id, Item: toItemJSON(item)}, nil
	})
}

func (h *Handler) bestItem(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		item, err := h.analyst.BestItemForMerchant(id)
		if err != nil {
			return nil, err
		}
		return merchantItemResponse{MerchantID: id, Item: toItemJSON(item)}, nil
	})
}

func (h *Handler) goldenItems(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		items, err := h.analyst.GoldenItems()
		if err != nil {
			return nil, err
		}
		return toItemListJSON(items), nil
	})
}

func (h *Handler) invoiceStatusPercentage(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		status, err := core.ParseInvoiceStatus(r.URL.Query().Get("status"))
		if err != nil {
			return nil, err
		}
		pct, err := h.analyst.InvoiceStatusPercentage(status)
		if err != nil {
			return nil, err
		}
		return statusPercentageResponse{Status: string(status), Percentage: pct}, nil
	})
}

func (h *Handler) topDaysByInvoiceCount(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		days, err := h.analyst.TopDaysByInvoiceCount()
		if err != nil {
			return nil, err
		}
		return topDaysResponse{Days: days}, nil
	})
}

func (h *Handler) invoiceTotal(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		total, err := h.analyst.InvoiceTotal(id)
		if err != nil {
			return nil, err
		}
		return invoiceTotalResponse{InvoiceID: id, Total: core.FormatPrice(total)}, nil
	})
}

func (h *Handler) invoicePaid(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		id, err := urlID(r)
		if err != nil {
			return nil, err
		}
		if _, err := h.dataset.Invoices.FindByID(id); err != nil {
			return nil, err
		}
		return invoicePaidResponse{InvoiceID: id, Paid: h.analyst.InvoicePaidInFull(id)}, nil
	})
}

func (h *Handler) revenueByDate(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() (any, error) {
		raw := r.URL.Query().Get("date")
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("bad date %q, want YYYY-MM-DD: %w", raw, core.ErrInvalidArgument)
		}
		revenue, err := h.analyst.TotalRevenueByDate(date)
		if err != nil {
			return nil, err
		}
		return dateRevenueResponse{Date: raw, Revenue: core.FormatPrice(revenue)}, nil
	})
}

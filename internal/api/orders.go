package api

import (
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/orders"
)

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	client, good := queryID(w, r, "client_id")
	if !good {
		return
	}
	status := orders.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		fail(w, http.StatusBadRequest, "unknown status")
		return
	}
	items, err := h.d.Orders.List(r.Context(), client, status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, items)
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orders.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	o, err := h.d.Orders.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	created(w, o)
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	o, err := h.d.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if o == nil {
		notFound(w)
		return
	}
	ok(w, o)
}

func (h *handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var in orders.Input
	if !decode(w, r, &in) {
		return
	}
	if err := in.Normalize(); err != nil {
		invalid(w, err)
		return
	}
	o, err := h.d.Orders.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if o == nil {
		notFound(w)
		return
	}
	ok(w, o)
}

func (h *handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	var req struct {
		Status orders.Status `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		fail(w, http.StatusUnprocessableEntity, "unknown status")
		return
	}
	found, err := h.d.Orders.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	ok(w, map[string]any{"id": id, "status": req.Status})
}

func (h *handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	found, err := h.d.Orders.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if !found {
		notFound(w)
		return
	}
	noContent(w)
}

type invoiceView struct {
	*orders.Invoice
	PaymentURL string `json:"payment_url,omitempty"`
}

func (h *handler) viewInvoice(inv *orders.Invoice) invoiceView {
	v := invoiceView{Invoice: inv}
	if h.d.Payments != nil && inv.Status == orders.InvoicePending {
		v.PaymentURL = h.d.Payments.PaymentURL(inv.ID)
	}
	return v
}

func (h *handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	inv, err := h.d.Orders.CreateInvoice(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if inv == nil {
		notFound(w)
		return
	}
	created(w, h.viewInvoice(inv))
}

func (h *handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	id, good := pathID(w, r, "id")
	if !good {
		return
	}
	inv, err := h.d.Orders.InvoiceForOrder(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if inv == nil {
		notFound(w)
		return
	}
	ok(w, h.viewInvoice(inv))
}

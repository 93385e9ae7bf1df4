package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxUpload = 10 << 20

func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	st, err := h.d.Dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, st)
}

func attachment(w http.ResponseWriter, contentType, ext string) {
	name := fmt.Sprintf("stock-%s.%s", time.Now().Format(time.DateOnly), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
}

// exportCSV and exportXLSX render into a buffer first so a failure can still
// produce a JSON error instead of a truncated download.
func (h *handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.d.Reports.WriteStockCSV(r.Context(), &buf); err != nil {
		writeError(w, h.log, err)
		return
	}
	attachment(w, "text/csv", "csv")
	_, _ = buf.WriteTo(w)
}

func (h *handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.d.Reports.WriteStockXLSX(r.Context(), &buf); err != nil {
		writeError(w, h.log, err)
		return
	}
	attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx")
	_, _ = buf.WriteTo(w)
}

// importStocktake accepts the workbook either as a multipart "file" field or
// as the raw request body.
func (h *handler) importStocktake(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		f, _, err := r.FormFile("file")
		if err != nil {
			fail(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer f.Close()
		src = f
	}
	res, err := h.d.Reports.ImportStocktake(r.Context(), src)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	ok(w, res)
}

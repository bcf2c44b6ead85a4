package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/tripweaver/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"destination", "date", "day_number", "day_title",
	"time", "title", "description", "location", "cost", "duration", "tips",
}

// ExportTripItinerary handles GET /trips/{id}/itinerary/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTripItinerary(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := s.tripTarget(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		s.writeError(w, r, fmt.Errorf("%w: format must be json or csv", errBadRequest), "")
		return
	}

	rows, err := s.svc.Export.Export(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err, msgTripNotFound)
		return
	}

	if format == "csv" {
		writeCSV(w, rows, "itinerary-"+tripID.String()+".csv")
		return
	}
	if rows == nil {
		rows = []domain.ExportRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// writeCSV encodes rows into a buffer first so the full length is known
// before the status line is sent.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow, filename string) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.Destination,
		r.Date,
		strconv.Itoa(r.DayNumber),
		r.DayTitle,
		r.Time,
		r.Title,
		r.Description,
		r.Location,
		r.Cost,
		r.Duration,
		r.Tips,
	}
}

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/planilha/internal/core"
	"github.com/JonMunkholm/planilha/internal/ingest"
)

// exportFilename is the attachment name of /api/export responses.
const exportFilename = "dados_corrigidos.csv"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status":   "ok",
		"analyses": s.service.Status(),
	})
}

// handleAnalyze accepts a multipart upload in "file" or pasted text in the
// "data" form field and returns the detected issues.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	table, err := s.readInput(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	res, err := s.service.Analyze(r.Context(), table)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, res)
}

// readInput parses the analyze form. A named file wins over pasted data.
func (s *Server) readInput(r *http.Request) (*core.Table, error) {
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, formError(err)
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		if header.Filename != "" {
			return ingest.Parse(header.Filename, file)
		}
	}

	if _, ok := r.PostForm["data"]; ok {
		return ingest.ParseText(r.PostFormValue("data"))
	}
	return nil, errNoInput
}

// correctionRequest is the body of /api/apply_corrections.
type correctionRequest struct {
	Data        []core.Record     `json:"data"`
	Columns     []string          `json:"columns"`
	Corrections []core.Correction `json:"corrections"`
}

func (s *Server) handleApplyCorrections(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, formError(err))
		return
	}
	if req.Data == nil || req.Corrections == nil {
		fail(w, r, fmt.Errorf("%w: missing data or corrections", errMalformed))
		return
	}

	table := core.TableFromRecords(nil, req.Data)
	out, err := s.service.ApplyCorrections(r.Context(), table, req.Corrections, req.Columns)
	if err != nil {
		fail(w, r, err)
		return
	}

	writeJSON(w, r, map[string]any{"corrected_data": out.Records()})
}

// exportRequest is the body of /api/export.
type exportRequest struct {
	Data    []core.Record `json:"data"`
	Columns []string      `json:"columns"`
}

// handleExport normalizes the posted rows with ?schema= (or the configured
// default) and returns them as a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, r, formError(err))
		return
	}
	if req.Data == nil {
		fail(w, r, fmt.Errorf("%w: missing data", errMalformed))
		return
	}

	schema := r.URL.Query().Get("schema")
	if schema == "" {
		schema = s.cfg.Analysis.DefaultSchema
	}

	table := core.TableFromRecords(req.Columns, req.Data)
	out, report, err := s.service.Export(r.Context(), table, schema)
	if err != nil {
		fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := ingest.WriteCSV(&buf, out); err != nil {
		fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename))
	w.Header().Set("X-Export-Rows", strconv.Itoa(report.OutputRows))
	w.Header().Set("X-Export-Dropped-Rows", strconv.Itoa(len(report.DroppedRows)))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"default": s.cfg.Analysis.DefaultSchema,
		"schemas": s.service.ListSchemas(),
	})
}

func (s *Server) handleDescribeSchema(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "schema")
	fields, err := s.service.DescribeSchema(key)
	if err != nil {
		fail(w, r, err)
		return
	}
	writeJSON(w, r, map[string]any{"key": key, "fields": fields})
}

// formError keeps body-size errors intact and marks everything else as a
// malformed request.
func formError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return err
	}
	return fmt.Errorf("%w: %v", errMalformed, err)
}

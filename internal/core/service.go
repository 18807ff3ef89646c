package core

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/planilha/internal/logging"
)

// AnalysisTimeout bounds a single analysis, including the wait for a slot.
var AnalysisTimeout = 2 * time.Minute

// Service is the entry point used by the HTTP and CLI frontends. It gates
// analyses behind an AnalysisLimiter and otherwise delegates to the package
// functions.
type Service struct {
	limiter    *AnalysisLimiter
	detectors  []Detector
	exportFrom string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLimiter replaces the default analysis limiter.
func WithLimiter(l *AnalysisLimiter) ServiceOption {
	return func(s *Service) { s.limiter = l }
}

// WithDetectors replaces the default detector set.
func WithDetectors(d ...Detector) ServiceOption {
	return func(s *Service) { s.detectors = d }
}

// WithDefaultSchema sets the export schema used when a caller names none.
func WithDefaultSchema(key string) ServiceOption {
	return func(s *Service) { s.exportFrom = key }
}

// NewService creates a Service with the default detectors and limiter.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		limiter:    NewAnalysisLimiter(DefaultMaxConcurrentAnalyses, DefaultAnalysisWait),
		detectors:  DefaultDetectors(),
		exportFrom: "vendas",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs every detector over t and returns the issues found.
func (s *Service) Analyze(ctx context.Context, t *Table) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, AnalysisTimeout)
	defer cancel()

	var res *Result
	err := s.limiter.Run(ctx, func(ctx context.Context) error {
		res = ProcessWith(ctx, t, s.detectors)
		return ctx.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return res, nil
}

// ApplyCorrections applies corrections to t. See the package-level
// ApplyCorrections for the resolution rules.
func (s *Service) ApplyCorrections(ctx context.Context, t *Table, corrections []Correction, columns []string) (*Table, error) {
	out, err := ApplyCorrections(t, corrections, columns)
	if err != nil {
		logging.FromContext(ctx).Warn("corrections rejected", "error", err, "count", len(corrections))
		return nil, err
	}
	logging.FromContext(ctx).Info("corrections applied", "count", len(corrections), "rows", out.NumRows())
	return out, nil
}

// Export normalizes t with the named schema, or the default one when key is
// empty.
func (s *Service) Export(ctx context.Context, t *Table, key string) (*Table, *ExportReport, error) {
	if key == "" {
		key = s.exportFrom
	}
	return NormalizeForExportByKey(ctx, t, key)
}

// ListSchemas returns display information for every registered schema.
func (s *Service) ListSchemas() []SchemaInfo {
	defs := All()
	infos := make([]SchemaInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// DescribeSchema returns the fields of one schema with their type names.
func (s *Service) DescribeSchema(key string) ([]FieldDescription, error) {
	schema, ok := Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, key)
	}
	out := make([]FieldDescription, len(schema.FieldSpecs))
	for i, f := range schema.FieldSpecs {
		out[i] = FieldDescription{
			Name:     f.Name,
			Type:     f.Type.String(),
			Required: f.Required,
			Synonyms: append([]string(nil), f.Synonyms...),
		}
	}
	return out, nil
}

// FieldDescription is the public view of a FieldSpec.
type FieldDescription struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Synonyms []string `json:"synonyms"`
}

// Status reports the analysis limiter state.
func (s *Service) Status() LimiterStatus {
	return s.limiter.Status()
}

// Drain waits for in-flight analyses to finish.
func (s *Service) Drain(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

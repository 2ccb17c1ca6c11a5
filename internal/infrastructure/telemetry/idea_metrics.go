package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// LookupResult labels the outcome of fetching a stored idea.
type LookupResult string

const (
	LookupResultFound    LookupResult = "found"
	LookupResultNotFound LookupResult = "not_found"
	LookupResultError    LookupResult = "error"
)

var (
	rejectedByValidation = metric.WithAttributes(AttrRejectReason.String("validation"))

	lookupAttrs = map[LookupResult]metric.AddOption{
		LookupResultFound:    metric.WithAttributes(AttrLookupResult.String(string(LookupResultFound))),
		LookupResultNotFound: metric.WithAttributes(AttrLookupResult.String(string(LookupResultNotFound))),
		LookupResultError:    metric.WithAttributes(AttrLookupResult.String(string(LookupResultError))),
	}
)

// IdeaMetrics counts generated, rejected and fetched website ideas.
type IdeaMetrics struct {
	generated metric.Int64Counter
	sections  metric.Int64Counter
	rejected  metric.Int64Counter
	lookups   metric.Int64Counter
}

// NewIdeaMetrics creates the idea counters on meter.
func NewIdeaMetrics(meter metric.Meter) (*IdeaMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var m IdeaMetrics
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.generated, "ideagen_ideas_generated_total", "Website ideas generated and stored", "{ideas}"},
		{&m.sections, "ideagen_sections_generated_total", "Sections generated", "{sections}"},
		{&m.rejected, "ideagen_ideas_rejected_total", "Ideas rejected by validation", "{ideas}"},
		{&m.lookups, "ideagen_idea_lookups_total", "Idea lookups by id", "{lookups}"},
	}

	var errs []error
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*c.dst = counter
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordGenerated counts one stored idea and its sections.
func (m *IdeaMetrics) RecordGenerated(ctx context.Context, sections int) {
	m.generated.Add(ctx, 1)
	m.sections.Add(ctx, int64(sections))
}

// RecordRejected counts an idea that failed validation.
func (m *IdeaMetrics) RecordRejected(ctx context.Context) {
	m.rejected.Add(ctx, 1, rejectedByValidation)
}

// RecordLookup counts a get-by-id outcome.
func (m *IdeaMetrics) RecordLookup(ctx context.Context, result LookupResult) {
	opt, ok := lookupAttrs[result]
	if !ok {
		opt = metric.WithAttributes(AttrLookupResult.String(string(result)))
	}
	m.lookups.Add(ctx, 1, opt)
}

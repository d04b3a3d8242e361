package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/parse"
)

// Diagnosis is the /test admin endpoint's response: a fetch-parse of one
// dispatch bundle without persisting anything, for eyeballing upstream
// shape changes.
type Diagnosis struct {
	Archive      string           `json:"archive"`
	RawBytes     int              `json:"raw_bytes"`
	RecordCount  int              `json:"record_count"`
	Warnings     []string         `json:"warnings,omitempty"`
	SamplePrices []string           `json:"sample_prices,omitempty"`
	Bundle       parse.DispatchBundle `json:"-"`
}

// Diagnose fetches and parses the latest DISPATCHIS bundle without writing
// to the relational store or archive, per spec.md §6's scraper admin
// surface.
func (o *Orchestrator) Diagnose(ctx context.Context) (Diagnosis, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "DISPATCHIS")
	if err != nil {
		return Diagnosis{}, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	bundle := parse.MergeDispatch(res.Records)

	sample := make([]string, 0, 5)
	for i, p := range bundle.Prices {
		if i >= 5 {
			break
		}
		sample = append(sample, string(p.Region))
	}

	return Diagnosis{
		Archive:      name,
		RawBytes:     len(zipBytes),
		RecordCount:  len(res.Records),
		Warnings:     res.Warnings,
		SamplePrices: sample,
		Bundle:       bundle,
	}, nil
}

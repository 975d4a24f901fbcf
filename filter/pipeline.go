package filter

import (
	"go.uber.org/zap"

	"github.com/kognitoai/cohort/records"
)

// Params are the immutable inputs of a single pipeline run.
type Params struct {
	Group            *Group
	Columns          records.Columns
	Cohorts          CohortIndex
	Resolver         records.Resolver
	ExcludeDirtyData bool
}

// Pipeline orchestrates the dirty-data pre-pass and the filter tree
// evaluation over a full record set. A pipeline is re-entrant: each Run is an
// independent, synchronous pass over its inputs with no shared mutable state.
type Pipeline struct {
	logger *zap.SugaredLogger
	policy ReferencePolicy
}

func NewPipeline(logger *zap.SugaredLogger, policy ReferencePolicy) *Pipeline {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{
		logger: logger,
		policy: policy,
	}
}

// Run returns the records matching the filter group, in input order. Records
// are paired with their original dataset positions throughout, so synthetic
// patient ids stay stable even when the dirty-data pass removes rows.
// Run never fails; degraded rules evaluate per the pipeline's reference
// policy.
func (p *Pipeline) Run(recs []records.Record, params Params) []records.Record {
	kept, _ := p.run(recs, params)
	return kept
}

// MatchingIDs runs the pipeline and returns the patient ids of the matching
// records, in input order.
func (p *Pipeline) MatchingIDs(recs []records.Record, params Params) []string {
	kept, indices := p.run(recs, params)
	ids := make([]string, len(kept))
	for i, record := range kept {
		ids[i] = records.PatientID(record, indices[i])
	}
	return ids
}

func (p *Pipeline) run(recs []records.Record, params Params) ([]records.Record, []int) {
	indices := make([]int, len(recs))
	for i := range recs {
		indices[i] = i
	}

	if params.ExcludeDirtyData || (params.Group != nil && params.Group.ExcludeDirtyData) {
		recs, indices = p.removeDirty(recs, indices, params)
	}

	if params.Group == nil {
		return recs, indices
	}

	evaluator := NewEvaluator(params.Resolver, params.Cohorts, p.policy)
	kept := make([]records.Record, 0, len(recs))
	keptIndices := make([]int, 0, len(recs))
	for i, record := range recs {
		if evaluator.EvaluateGroup(record, indices[i], params.Group, params.Columns) {
			kept = append(kept, record)
			keptIndices = append(keptIndices, indices[i])
		}
	}
	p.logger.Debugw("filter pipeline run",
		"input", len(recs),
		"matched", len(kept),
		"rules", params.Group.RuleCount(),
	)
	return kept, keptIndices
}

func (p *Pipeline) removeDirty(recs []records.Record, indices []int, params Params) ([]records.Record, []int) {
	clean := make([]records.Record, 0, len(recs))
	cleanIndices := make([]int, 0, len(recs))
	for i, record := range recs {
		if !isDirty(record, params.Columns, params.Resolver) {
			clean = append(clean, record)
			cleanIndices = append(cleanIndices, indices[i])
		}
	}
	p.logger.Debugw("dirty data pass", "input", len(recs), "clean", len(clean))
	return clean, cleanIndices
}

// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ajroetker/go-ldsbank/lds"
	"github.com/ajroetker/go-ldsbank/lds/contrib/conflict"
	"github.com/ajroetker/go-ldsbank/lds/contrib/coverage"
	"github.com/ajroetker/go-ldsbank/lds/contrib/validate"
	"github.com/ajroetker/go-ldsbank/lds/contrib/workerpool"
)

// cancelCheckInterval is how many candidates a shard evaluates between
// context checks.
const cancelCheckInterval = 256

// Request describes one search.
type Request struct {
	Config lds.Config
	Layout lds.LaneLayout
	Iter   int // Iteration the access sets are materialized at

	Family    Family
	Space     Space
	Objective Objective
	TopK      int

	// ReadSet is the fixed, externally derived read pattern scored by
	// MaximizeCoverage.
	ReadSet lds.AccessSet

	// Distinct discards candidates whose lanes do not map to distinct
	// addresses, e.g. write bases that must form a bijection onto row slots.
	Distinct bool

	// Validators run after Distinct and before scoring. A failing candidate
	// is discarded, not penalized.
	Validators []validate.Validator

	// Pool shards the grid. If nil, a pool of Workers workers is created for
	// the call; Workers <= 0 falls back to LDS_WORKERS, then GOMAXPROCS.
	Pool    *workerpool.Pool
	Workers int

	// Logger, if set, receives a debug summary of the search.
	Logger *slog.Logger
}

// Result is the ranked outcome of a search.
type Result struct {
	Params     []string       // Parameter names, in space order
	Objective  Objective      // How Candidates are ranked
	Candidates []Candidate    // Best first, at most TopK; empty if nothing was valid
	Evaluated  int            // Points of the space visited
	Dropped    map[string]int // Discarded candidates by lds.Reason
}

// Valid returns how many candidates passed every check.
func (r Result) Valid() int {
	n := r.Evaluated
	for _, d := range r.Dropped {
		n -= d
	}
	return n
}

func (req *Request) validate() error {
	if err := req.Config.Validate(); err != nil {
		return err
	}
	if req.Family.Build == nil {
		return lds.Preconditionf("Search", "family has no builder")
	}
	if req.Family.Validate != nil {
		if err := req.Family.Validate(); err != nil {
			return err
		}
	}
	if err := req.Space.Validate(); err != nil {
		return err
	}
	if req.TopK <= 0 {
		return lds.Preconditionf("Search", "top-k must be positive, got %d", req.TopK)
	}
	switch req.Objective {
	case MinimizeConflict:
	case MaximizeCoverage:
		if len(req.ReadSet) == 0 {
			return lds.Preconditionf("Search", "coverage objective needs a read set")
		}
	default:
		return lds.Preconditionf("Search", "unknown objective %d", req.Objective)
	}
	return nil
}

// Search exhaustively evaluates every point of req.Space and returns the
// req.TopK best valid candidates.
//
// Candidates that fail to evaluate (out of range, misaligned) or fail a
// validator are dropped and counted; the search goes on. A space with no valid
// candidate yields an empty result and a nil error. Malformed requests fail
// with lds.ErrPrecondition before any work is done; a precondition error
// raised while evaluating a candidate also aborts the search.
//
// The grid is split into contiguous shards, each keeping its own top-k; the
// shard lists are merged at the end. The ranking is a total order, so the
// result is identical for any number of workers.
func Search(ctx context.Context, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	pool := req.Pool
	if pool == nil {
		workers := req.Workers
		if workers <= 0 {
			workers = lds.WorkersEnv()
		}
		pool = workerpool.New(workers)
		defer pool.Close()
	}

	var checks []validate.Validator
	if req.Distinct {
		checks = append(checks, validate.Distinct())
	}
	checks = append(checks, req.Validators...)

	ev := lds.NewEvaluator(req.Config, req.Layout)
	model := req.Config.BankModel()
	n := req.Space.Size()

	shards := pool.NumShards(n)
	best := make([][]Candidate, shards)
	dropped := make([]map[string]int, shards)
	errs := make([]error, shards)

	pool.ForEachShard(n, func(shard, start, end int) {
		top := newTopK(req.TopK)
		drops := make(map[string]int)
		for i := start; i < end; i++ {
			if (i-start)%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					errs[shard] = err
					return
				}
			}
			c, err := evaluate(&req, ev, model, checks, req.Space.At(i))
			if errors.Is(err, lds.ErrPrecondition) {
				errs[shard] = err
				return
			}
			if err != nil {
				drops[lds.Reason(err)]++
				continue
			}
			top.push(c)
		}
		best[shard] = top.items
		dropped[shard] = drops
	})

	for _, err := range errs {
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Params:     req.Space.Names(),
		Objective:  req.Objective,
		Candidates: Merge(req.TopK, best...),
		Evaluated:  n,
		Dropped:    make(map[string]int),
	}
	if res.Candidates == nil {
		res.Candidates = []Candidate{}
	}
	for _, d := range dropped {
		for reason, count := range d {
			res.Dropped[reason] += count
		}
	}

	if req.Logger != nil {
		req.Logger.Debug("search done",
			"family", req.Family.Kind,
			"objective", req.Objective,
			"evaluated", res.Evaluated,
			"valid", res.Valid(),
			"kept", len(res.Candidates),
			"shards", shards)
	}
	return res, nil
}

// evaluate builds, materializes, checks and scores one point.
func evaluate(req *Request, ev *lds.Evaluator, model lds.BankModel, checks []validate.Validator, params Assignment) (Candidate, error) {
	f, err := req.Family.Build(params)
	if err != nil {
		return Candidate{}, err
	}
	set, err := ev.Materialize(f, req.Iter)
	if err != nil {
		return Candidate{}, err
	}

	subject := validate.Subject{Formula: f, Set: set, Evaluator: ev, Iter: req.Iter}
	for _, v := range checks {
		if err := v.Check(subject); err != nil {
			return Candidate{}, err
		}
	}

	r, err := conflict.Analyze(set, model)
	if err != nil {
		return Candidate{}, err
	}
	c := Candidate{
		Params:    params,
		Formula:   f,
		Objective: req.Objective,
		Conflict:  r,
	}
	if req.Objective == MaximizeCoverage {
		c.Coverage = coverage.Evaluate(req.ReadSet, set)
	}
	return c, nil
}

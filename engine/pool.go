/*
 * pool.go, part of gochem's PME engine.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package engine orchestrates one full energy evaluation: it owns the
// worker pool and drives the Expand -> Rotate -> {real-space ||
// reciprocal} -> SCF -> Assemble -> Torque Projection pipeline, with
// the optional alchemical lambda pathway on top.
package engine

import (
	"runtime"
	"sync"
)

// Schedule selects how Pool.Run partitions [0, n) across workers.
type Schedule int

const (
	// ScheduleFixed splits [0, n) into one contiguous chunk per worker.
	ScheduleFixed Schedule = iota
	// ScheduleDynamic hands out single indices from a shared job
	// channel, for regions whose per-index cost is uneven.
	ScheduleDynamic
)

// Pool is a fixed-size worker pool. It has no persistent goroutines of
// its own; Run spins up exactly Workers goroutines for the duration of
// one region and joins them before returning, so each region acts as a
// barrier.
type Pool struct {
	Workers int
}

// NewPool returns a Pool sized to runtime.NumCPU() workers, or to
// workers if positive.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{Workers: workers}
}

// Run partitions the index range [0, n) across the pool according to
// schedule and calls body once per partition, blocking until every
// partition has completed. body receives a contiguous [lo, hi)
// sub-range; under ScheduleDynamic each call covers exactly one index
// (hi == lo+1). With a single worker, or with n == 1, body is called
// once inline over the whole [0, n) under either schedule.
func (p *Pool) Run(n int, schedule Schedule, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := p.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		body(0, n)
		return
	}

	switch schedule {
	case ScheduleDynamic:
		jobs := make(chan int, n)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					body(i, i+1)
				}
			}()
		}
		for i := 0; i < n; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	default: // ScheduleFixed
		chunk := (n + workers - 1) / workers
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * chunk
			if lo >= n {
				break
			}
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				body(lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	}
}

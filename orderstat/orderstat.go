// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package orderstat - outlier resistant selection over untrusted samples
package orderstat

import (
	"sort"
)

// Ordered - types that can be ranked by median
type Ordered interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float64
}

// Mode - the most frequent value of a sample set
//
// ties are resolved in favour of the value seen first, so the result
// depends only on the order of samples and never on map iteration
//
// second result is false for an empty set
func Mode[T comparable](samples []T) (T, bool) {
	var none T
	if 0 == len(samples) {
		return none, false
	}

	counts := make(map[T]int, len(samples))
	best := 0
	for _, s := range samples {
		counts[s] += 1
		if counts[s] > best {
			best = counts[s]
		}
	}

	for _, s := range samples {
		if counts[s] == best {
			return s, true
		}
	}
	return none, false // not reached
}

// Median - the middle element of the ascending sorted samples
//
// for an even count this is the upper of the two middle elements
// the input slice is not modified
//
// second result is false for an empty set
func Median[T Ordered](samples []T) (T, bool) {
	var zero T
	if 0 == len(samples) {
		return zero, false
	}

	sorted := make([]T, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	return sorted[len(sorted)/2], true
}

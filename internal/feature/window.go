/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package feature

import "premonitor/common/dto"

// DefaultWindowSize matches the sequence length the degradation model expects.
const DefaultWindowSize = 50

// SlidingWindow is a bounded FIFO of feature vectors. Pushing onto a full
// window evicts the oldest entry, so the window holds the most recent
// capacity-many vectors in insertion order. Not safe for concurrent use; each
// equipment's window is owned by the orchestrator goroutine.
type SlidingWindow struct {
	buf      []dto.FeatureVector
	start    int
	count    int
	capacity int
}

func NewSlidingWindow(capacity int) *SlidingWindow {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &SlidingWindow{
		buf:      make([]dto.FeatureVector, capacity),
		capacity: capacity,
	}
}

// Push appends a vector, evicting the oldest when full.
func (w *SlidingWindow) Push(v dto.FeatureVector) {
	if w.count < w.capacity {
		w.buf[(w.start+w.count)%w.capacity] = v
		w.count++
		return
	}
	w.buf[w.start] = v
	w.start = (w.start + 1) % w.capacity
}

func (w *SlidingWindow) Len() int {
	return w.count
}

func (w *SlidingWindow) Capacity() int {
	return w.capacity
}

// Full reports whether the window has reached capacity. Sequence inference
// only runs on full windows.
func (w *SlidingWindow) Full() bool {
	return w.count == w.capacity
}

// Snapshot returns the window contents oldest-first as a fresh slice. Mutating
// the result does not affect the window.
func (w *SlidingWindow) Snapshot() []dto.FeatureVector {
	out := make([]dto.FeatureVector, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.start+i)%w.capacity]
	}
	return out
}

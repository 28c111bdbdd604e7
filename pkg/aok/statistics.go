// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Openshade

package aok

import (
	"errors"
	"fmt"
	"time"
)

// Statistics tracks decode outcomes and error rates over a listening
// session.
type Statistics struct {
	StartTime time.Time

	// Counters
	TotalAttempts  uint64
	ValidFrames    uint64
	SyncFailures   uint64 // ErrNoSync / ErrSyncLost
	SymbolErrors   uint64 // ErrBadSymbol / ErrShortFrame
	StartRejects   uint64
	ChecksumErrors uint64

	// Rates (calculated)
	FrameRate float64 // valid frames/sec
	ErrorRate float64 // errors/sec
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{StartTime: time.Now()}
}

// Update records one Decode outcome. Sync failures on an otherwise
// quiet band are normal and counted separately from in-frame errors.
func (s *Statistics) Update(frame *Frame, err error) {
	s.TotalAttempts++

	switch {
	case err == nil && frame != nil:
		s.ValidFrames++
	case errors.Is(err, ErrNoSync), errors.Is(err, ErrSyncLost):
		s.SyncFailures++
	case errors.Is(err, ErrBadSymbol), errors.Is(err, ErrShortFrame):
		s.SymbolErrors++
	case errors.Is(err, ErrStartCode):
		s.StartRejects++
	case errors.Is(err, ErrChecksum):
		s.ChecksumErrors++
	}
}

// CalculateRates recomputes the frame and error rates.
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.ValidFrames) / elapsed
		errorCount := s.SymbolErrors + s.StartRejects + s.ChecksumErrors
		s.ErrorRate = float64(errorCount) / elapsed
	}
}

// String returns a formatted statistics summary.
func (s *Statistics) String() string {
	s.CalculateRates()

	var validPercent float64
	if s.TotalAttempts > 0 {
		validPercent = float64(s.ValidFrames) * 100.0 / float64(s.TotalAttempts)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Decode Attempts: %8d\n", s.TotalAttempts)
	result += fmt.Sprintf("Valid Frames:    %8d (%.1f%%)\n", s.ValidFrames, validPercent)
	if s.SyncFailures > 0 {
		result += fmt.Sprintf("Sync Failures:   %8d\n", s.SyncFailures)
	}
	if s.SymbolErrors > 0 {
		result += fmt.Sprintf("Symbol Errors:   %8d\n", s.SymbolErrors)
	}
	if s.StartRejects > 0 {
		result += fmt.Sprintf("Start Rejects:   %8d\n", s.StartRejects)
	}
	if s.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d\n", s.ChecksumErrors)
	}
	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset clears all counters.
func (s *Statistics) Reset() {
	*s = Statistics{StartTime: time.Now()}
}

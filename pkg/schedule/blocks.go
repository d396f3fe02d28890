package schedule

import (
	"fmt"

	"tableflip.dev/agenda/pkg/timeutil"
)

// BlockType labels a span of the day for background classification.
type BlockType string

const (
	BlockWork     BlockType = "work"
	BlockPersonal BlockType = "personal"
	BlockBreak    BlockType = "break"
)

// ParseBlockType validates a stored block type string.
func ParseBlockType(raw string) (BlockType, error) {
	switch BlockType(raw) {
	case BlockWork, BlockPersonal, BlockBreak:
		return BlockType(raw), nil
	case "":
		return BlockWork, nil
	}
	return BlockWork, fmt.Errorf("schedule: unknown block type %q", raw)
}

// TimeBlock is a labeled wall-clock span. An end chronologically before the
// start means the block wraps past midnight into the next day.
type TimeBlock struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Type  BlockType `json:"type"`
	Label string    `json:"label,omitempty"`
}

// span resolves the block to minutes on a 48-hour line, applying the +24h
// wraparound rule when end < start.
func (b TimeBlock) span() (start, end int, err error) {
	start, err = timeutil.ParseClock(b.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = timeutil.ParseClock(b.End)
	if err != nil {
		return 0, 0, err
	}
	if end < start {
		end += timeutil.MinutesPerDay
	}
	return start, end, nil
}

// ClassifyGranule determines the block type and label shown for the i-th
// 15-minute granule of a day. The first block in list order that fully
// contains the granule wins; malformed blocks are skipped, and a day with no
// matching block defaults to a work slot with no label. Never fails.
func ClassifyGranule(i int, blocks []TimeBlock) (BlockType, string) {
	granuleStart := timeutil.GranuleStart(i)
	granuleEnd := granuleStart + timeutil.GranuleMinutes

	for _, b := range blocks {
		start, end, err := b.span()
		if err != nil {
			continue
		}
		if granuleStart >= start && granuleEnd <= end {
			typ := b.Type
			if typ == "" {
				typ = BlockWork
			}
			return typ, b.Label
		}
	}
	return BlockWork, ""
}

// ValidateBlocks rejects block sets that could make classification ambiguous:
// unparseable clock values, unknown types, and overlapping spans. It runs at
// configuration time so stored block sets are guaranteed non-overlapping; the
// classifier itself still resolves legacy overlaps by first match.
func ValidateBlocks(blocks []TimeBlock) error {
	type resolved struct {
		block      TimeBlock
		start, end int
	}
	spans := make([]resolved, 0, len(blocks))
	for i, b := range blocks {
		if _, err := ParseBlockType(string(b.Type)); err != nil {
			return fmt.Errorf("schedule: block %d: %w", i, err)
		}
		start, end, err := b.span()
		if err != nil {
			return fmt.Errorf("schedule: block %d: %w", i, err)
		}
		if start == end {
			return fmt.Errorf("schedule: block %d (%s-%s) is empty", i, b.Start, b.End)
		}
		spans = append(spans, resolved{block: b, start: start, end: end})
	}

	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if spansOverlap(spans[i].start, spans[i].end, spans[j].start, spans[j].end) {
				return fmt.Errorf("schedule: blocks %s-%s and %s-%s overlap",
					spans[i].block.Start, spans[i].block.End,
					spans[j].block.Start, spans[j].block.End)
			}
		}
	}
	return nil
}

func spansOverlap(aStart, aEnd, bStart, bEnd int) bool {
	// Wrapped blocks extend past minute 1440; compare each pair in both the
	// same-day and next-day alignment so 23:00-00:30 conflicts with 00:00-01:00.
	if aStart < bEnd && bStart < aEnd {
		return true
	}
	const day = timeutil.MinutesPerDay
	if aStart+day < bEnd && bStart < aEnd+day {
		return true
	}
	if aStart < bEnd+day && bStart+day < aEnd {
		return true
	}
	return false
}

package navigation

import "sync"

const historyLimit = 1000

// History keeps the most recent finished sessions in a bounded ring for
// operational dashboards.
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
	limit   int
}

func NewHistory() *History {
	return &History{limit: historyLimit}
}

func (h *History) Append(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) >= h.limit {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, entry)
}

func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{TotalRecorded: len(h.entries)}
	totalMinutes := 0
	for _, entry := range h.entries {
		switch entry.Outcome {
		case OutcomeCompleted:
			stats.TotalCompleted++
		case OutcomeCancelled:
			stats.TotalCancelled++
		}
		totalMinutes += entry.DurationMinutes
	}
	if len(h.entries) > 0 {
		stats.AverageDurationMinutes = float64(totalMinutes) / float64(len(h.entries))
	}
	return stats
}

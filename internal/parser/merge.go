package parser

import (
	"sort"

	"github.com/Mayank2601/financial-dashboard/internal/models"
)

// Merge combines per-file statements into one globally ordered dataset.
// The ordering key is (date, source order within file, file ingestion
// order), which is deterministic for any input permutation. Statements
// that yielded no transactions stay listed in Sources so callers can
// report which inputs failed; no cross-file de-duplication happens here.
func Merge(statements []models.Statement) *models.Dataset {
	var all []models.Transaction
	fileIndex := make(map[string]int, len(statements))
	for i, st := range statements {
		fileIndex[st.File] = i
		all = append(all, st.Transactions...)
	}

	sort.SliceStable(all, func(a, b int) bool {
		if !all[a].Date.Equal(all[b].Date) {
			return all[a].Date.Before(all[b].Date)
		}
		if all[a].SourceOrder != all[b].SourceOrder {
			return all[a].SourceOrder < all[b].SourceOrder
		}
		return fileIndex[all[a].SourceFile] < fileIndex[all[b].SourceFile]
	})

	return &models.Dataset{Transactions: all, Sources: statements}
}

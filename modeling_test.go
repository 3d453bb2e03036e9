//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"sync"
	"testing"

	"billtopics/internal/db"

	"github.com/stretchr/testify/assert"
)

func TestWriteBackLabelsRejectsMismatch(t *testing.T) {
	err := writebacklabels(make([]db.Bill, 3), []string{"only-one"})
	assert.Error(t, err)
}

func TestWriteBackLabelsSerialized(t *testing.T) {
	// several jobs can finish at once and each writes onto the shared corpus
	// slice; the winner must win wholesale, not label by label
	ls, err := db.OpenSQLite(":memory:")
	assert.NoError(t, err)
	t.Cleanup(ls.Close)

	prev := SQLStore
	SQLStore = ls
	t.Cleanup(func() { SQLStore = prev })

	bills := make([]db.Bill, 64)
	for i := range bills {
		bills[i] = db.Bill{ID: i + 1}
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			labels := make([]string, len(bills))
			for i := range labels {
				labels[i] = fmt.Sprintf("writer-%02d", w)
			}
			assert.NoError(t, writebacklabels(bills, labels))
		}(w)
	}
	wg.Wait()

	for i := 1; i < len(bills); i++ {
		assert.Equal(t, bills[0].Topic, bills[i].Topic)
	}
}

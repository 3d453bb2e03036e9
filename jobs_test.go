//    BillTopicServer
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobVaultLifecycle(t *testing.T) {
	jv := &JobVault{JobMap: make(map[string]Job)}

	j := jv.NewJob("sweep")
	assert.NotEmpty(t, j.ID)
	assert.Equal(t, -1, j.Remain)
	assert.Equal(t, -1, j.Total)

	jv.SetProgress(j.ID, 35, 50)
	got, ok := jv.Get(j.ID)
	assert.True(t, ok)
	assert.Equal(t, 35, got.Remain)
	assert.Equal(t, 50, got.Total)

	jv.Finish(j.ID, "best k: 30", "bts-sweep-x.html")
	got, _ = jv.Get(j.ID)
	assert.True(t, got.Finished)
	assert.False(t, got.Failed)
	assert.Equal(t, 0, got.Remain)
	assert.Equal(t, "bts-sweep-x.html", got.Report)

	jv.Delete(j.ID)
	_, ok = jv.Get(j.ID)
	assert.False(t, ok)
	assert.Empty(t, jv.All())
}

func TestJobVaultFail(t *testing.T) {
	jv := &JobVault{JobMap: make(map[string]Job)}

	j := jv.NewJob("fit")
	jv.Fail(j.ID, fmt.Errorf("no usable documents"))

	got, ok := jv.Get(j.ID)
	assert.True(t, ok)
	assert.True(t, got.Finished)
	assert.True(t, got.Failed)
	assert.Equal(t, "no usable documents", got.Summary)
}

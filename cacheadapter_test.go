package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/minaretapp/minaret/internal/app/pcache"
	"github.com/minaretapp/minaret/internal/app/testutil"
)

func TestCacheAdapter(t *testing.T) {
	db, st, _ := testutil.NewDBInMemory()
	defer db.Close()
	pc := pcache.New(st, 0)
	ca := newCacheAdapter(pc, "prefix-", time.Hour)
	t.Run("get existing key", func(t *testing.T) {
		pc.Clear()
		ca.Set("a", []byte("alpha"))
		got, ok := ca.Get("a")
		if assert.True(t, ok) {
			assert.Equal(t, []byte("alpha"), got)
		}
	})
	t.Run("get non existing key", func(t *testing.T) {
		pc.Clear()
		_, ok := ca.Get("a")
		assert.False(t, ok)
	})
	t.Run("keys are prefixed", func(t *testing.T) {
		pc.Clear()
		ca.Set("a", []byte("alpha"))
		_, ok := pc.Get("prefix-a")
		assert.True(t, ok)
	})
	t.Run("can delete a key", func(t *testing.T) {
		pc.Clear()
		ca.Set("a", []byte("alpha"))
		ca.Delete("a")
		_, ok := ca.Get("a")
		assert.False(t, ok)
	})
}

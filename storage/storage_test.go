// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftnrg/shiftd/fault"
	"github.com/shiftnrg/shiftd/storage"
)

// test database file
const databaseFileName = "test.leveldb"

// remove all files created by test
func removeFiles() {
	os.RemoveAll(databaseFileName)
}

// configure for testing
func setup(t *testing.T) *storage.Store {
	removeFiles()
	s, err := storage.Open(databaseFileName, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return s
}

// post test cleanup
func teardown(s *storage.Store) {
	s.Close()
	removeFiles()
}

func TestPutGetDelete(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()

	assert.Nil(t, p.Put([]byte("key-one"), []byte("data-one")), "put")
	assert.Nil(t, p.PutN([]byte("key-n"), 1234), "putN")

	assert.Equal(t, []byte("data-one"), p.Get([]byte("key-one")), "wrong data")
	assert.True(t, p.Has([]byte("key-one")), "missing key")

	n, found := p.GetN([]byte("key-n"))
	assert.True(t, found, "missing N")
	assert.Equal(t, uint64(1234), n, "wrong N")

	assert.Nil(t, p.Delete([]byte("key-one")), "delete")
	assert.Nil(t, p.Get([]byte("key-one")), "deleted key still present")
	assert.False(t, p.Has([]byte("key-one")), "deleted key still present")

	// other pools are unaffected
	assert.Nil(t, s.Pool.Accounts.Get([]byte("key-n")), "pool prefix leak")
}

func TestReopenKeepsData(t *testing.T) {
	s := setup(t)
	defer removeFiles()

	s.ScratchPool().Put([]byte("persist"), []byte("yes"))
	s.Close()

	s, err := storage.Open(databaseFileName, storage.ReadWrite)
	assert.Nil(t, err, "reopen")
	defer s.Close()
	assert.Equal(t, []byte("yes"), s.ScratchPool().Get([]byte("persist")), "data lost")
}

func TestCursor(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()
	for _, k := range []string{"d", "a", "c", "b", "e"} {
		p.Put([]byte(k), []byte("v-"+k))
	}

	cursor := p.NewFetchCursor()
	first, err := cursor.Fetch(2)
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 2, len(first), "wrong count")
	assert.Equal(t, []byte("a"), first[0].Key, "wrong first key")
	assert.Equal(t, []byte("b"), first[1].Key, "wrong second key")

	rest, err := cursor.Fetch(10)
	assert.Nil(t, err, "fetch rest")
	assert.Equal(t, 3, len(rest), "wrong remaining count")
	assert.Equal(t, []byte("c"), rest[0].Key, "cursor did not advance")

	reverse, err := p.NewFetchCursor().FetchReverse(2)
	assert.Nil(t, err, "reverse")
	assert.Equal(t, []byte("e"), reverse[0].Key, "wrong reverse first")
	assert.Equal(t, []byte("d"), reverse[1].Key, "wrong reverse second")

	_, err = cursor.Fetch(0)
	assert.Equal(t, fault.InvalidCount, err, "zero count accepted")

	keys := []string{}
	err = p.NewFetchCursor().Map(func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.Nil(t, err, "map")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys, "wrong map order")
}

func TestPrefixAndLast(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()
	for _, k := range []string{"x1", "x2", "y1", "y2", "y3", "z1"} {
		p.Put([]byte(k), []byte{})
	}

	ys, err := p.NewFetchCursor().Prefix([]byte("y")).Fetch(10)
	assert.Nil(t, err, "prefix fetch")
	assert.Equal(t, 3, len(ys), "wrong prefix count")

	last, found := p.LastElement()
	assert.True(t, found, "no last")
	assert.Equal(t, []byte("z1"), last.Key, "wrong last")

	before, found := p.LastBefore([]byte("y3"))
	assert.True(t, found, "no last before")
	assert.Equal(t, []byte("y2"), before.Key, "wrong last before")

	_, found = p.LastBefore([]byte("x1"))
	assert.False(t, found, "found before first key")
}

func TestTransactionCommit(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()
	trx := s.Transaction()

	assert.Nil(t, trx.Begin(), "begin")
	assert.Equal(t, storage.ErrTransactionInUse, trx.Begin(), "double begin")

	trx.Put(p, []byte("k"), []byte("pending"))
	trx.PutN(p, []byte("n"), 7)

	// visible through the transaction, not yet committed
	assert.Equal(t, []byte("pending"), trx.Get(p, []byte("k")), "pending write not visible")
	assert.Nil(t, p.Get([]byte("k")), "uncommitted write visible")

	n, found := trx.GetN(p, []byte("n"))
	assert.True(t, found, "pending N")
	assert.Equal(t, uint64(7), n, "wrong pending N")

	assert.Nil(t, trx.Commit(), "commit")
	assert.False(t, trx.InUse(), "still in use")
	assert.Equal(t, []byte("pending"), p.Get([]byte("k")), "commit lost")
}

func TestTransactionAbort(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()
	p.Put([]byte("keep"), []byte("old"))

	trx := s.Transaction()
	assert.Nil(t, trx.Begin(), "begin")
	trx.Put(p, []byte("keep"), []byte("new"))
	trx.Delete(p, []byte("keep"))
	assert.False(t, trx.Has(p, []byte("keep")), "pending delete not visible")

	trx.Abort()
	assert.Equal(t, []byte("old"), p.Get([]byte("keep")), "abort did not discard")
	assert.Equal(t, []byte("old"), trx.Get(p, []byte("keep")), "stale pending data")
}

func TestLastInPrefix(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	p := s.ScratchPool()
	p.Put([]byte("a1"), []byte("one"))
	p.Put([]byte("a3"), []byte("three"))
	p.Put([]byte("b9"), []byte("other"))

	trx := s.Transaction()
	e, found := trx.LastInPrefix(p, []byte("a"))
	assert.True(t, found, "committed")
	assert.Equal(t, []byte("a3"), e.Key, "committed key")

	assert.Nil(t, trx.Begin(), "begin")
	defer trx.Abort()

	trx.Put(p, []byte("a2"), []byte("two"))
	e, _ = trx.LastInPrefix(p, []byte("a"))
	assert.Equal(t, []byte("a3"), e.Key, "lower pending key")

	trx.Delete(p, []byte("a3"))
	e, _ = trx.LastInPrefix(p, []byte("a"))
	assert.Equal(t, []byte("a2"), e.Key, "pending delete")
	assert.Equal(t, []byte("two"), e.Value, "pending value")

	trx.Put(p, []byte("a1"), []byte("replaced"))
	trx.Delete(p, []byte("a2"))
	e, _ = trx.LastInPrefix(p, []byte("a"))
	assert.Equal(t, []byte("a1"), e.Key, "replaced key")
	assert.Equal(t, []byte("replaced"), e.Value, "replaced value")

	trx.Delete(p, []byte("a1"))
	_, found = trx.LastInPrefix(p, []byte("a"))
	assert.False(t, found, "all deleted")
}

// the scratch pool used by these tests is outside every store pool
func TestPoolPrefixes(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	seen := map[byte]string{
		s.ScratchPool().Prefix(): "scratch",
	}
	v := reflect.ValueOf(s.Pool)
	for i := 0; i < v.NumField(); i += 1 {
		name := v.Type().Field(i).Name
		prefix := v.Field(i).Interface().(*storage.PoolHandle).Prefix()
		other, found := seen[prefix]
		assert.False(t, found, "pool: %s shares prefix: %q with: %s", name, prefix, other)
		seen[prefix] = name
	}
}

package bkv

import (
	"encoding/hex"
	"iter"
	"os"
	"reflect"
	"strings"
	"testing"
)

type grocery struct {
	Category string `msgpack:"c"`
	Name     string `msgpack:"n"`
}

func groceryCategory(v grocery) []byte { return []byte(v.Category) }

func tempDBPath(t testing.TB) string {
	t.Helper()
	f := must(os.CreateTemp("", "bkv_test_*.db"))
	ensure(f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func setupBolt(t testing.TB) *BoltStorage {
	t.Helper()
	st := must(OpenBolt(tempDBPath(t), BoltOptions{IsTesting: true}))
	t.Cleanup(func() { st.Close() })
	return st
}

func deepEqual[T any](t testing.TB, a, e T) {
	if !reflect.DeepEqual(a, e) {
		t.Helper()
		t.Errorf("** got %v, wanted %v", a, e)
	}
}

func isnil[T any, P ~*T](t testing.TB, a P) {
	if a != nil {
		t.Helper()
		t.Errorf("** got %v, wanted nil", a)
	}
}

func isnonnil[T any, P ~*T](t testing.TB, a P) {
	if a == nil {
		t.Helper()
		t.Errorf("** got nil %T, wanted non-nil", a)
	}
}

func x(data string) []byte {
	data = strings.ReplaceAll(data, " ", "")
	return must(hex.DecodeString(data))
}

func collectPKs(seq iter.Seq[[]byte]) []string {
	var out []string
	for pk := range seq {
		out = append(out, string(pk))
	}
	return out
}

func collectItems[T any](t testing.TB, seq iter.Seq2[KV[T], error]) []KV[T] {
	t.Helper()
	var out []KV[T]
	for kv, err := range seq {
		if err != nil {
			t.Fatalf("** unexpected error for key %q: %v", kv.Key, err)
		}
		out = append(out, kv)
	}
	return out
}

func keysOf[T any](items []KV[T]) []string {
	var out []string
	for _, kv := range items {
		out = append(out, string(kv.Key))
	}
	return out
}

func scanKeys(st Storage, start, end []byte, order Order) []string {
	var out []string
	for k := range st.Scan(start, end, order) {
		out = append(out, string(k))
	}
	return out
}

func dumpRaw(st Storage) []string {
	var out []string
	for k, v := range st.Scan(nil, nil, Ascending) {
		out = append(out, hex.EncodeToString(k)+"="+hex.EncodeToString(v))
	}
	return out
}

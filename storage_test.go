package bkv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// runStorageTests drives the Storage contract against a backend. Both
// implementations have to pass the same suite.
func runStorageTests(t *testing.T, open func(t *testing.T) Storage) {
	t.Run("get absent", func(t *testing.T) {
		st := open(t)
		v, err := st.Get([]byte("nope"))
		require.NoError(t, err)
		require.Nil(t, v)
	})

	t.Run("set get remove", func(t *testing.T) {
		st := open(t)
		require.NoError(t, st.Set(x("01"), []byte("one")))
		v, err := st.Get(x("01"))
		require.NoError(t, err)
		require.Equal(t, []byte("one"), v)

		require.NoError(t, st.Set(x("01"), []byte("uno")))
		v, err = st.Get(x("01"))
		require.NoError(t, err)
		require.Equal(t, []byte("uno"), v)

		require.NoError(t, st.Remove(x("01")))
		v, err = st.Get(x("01"))
		require.NoError(t, err)
		require.Nil(t, v)

		// removing an absent key is not an error
		require.NoError(t, st.Remove(x("01")))
	})

	t.Run("scan bounds and order", func(t *testing.T) {
		st := open(t)
		seed(t, st, "a", "b", "c", "d")

		require.Equal(t, []string{"a", "b", "c", "d"}, scanKeys(st, nil, nil, Ascending))
		require.Equal(t, []string{"d", "c", "b", "a"}, scanKeys(st, nil, nil, Descending))
		require.Equal(t, []string{"b", "c"}, scanKeys(st, []byte("b"), []byte("d"), Ascending))
		require.Equal(t, []string{"c", "b"}, scanKeys(st, []byte("b"), []byte("d"), Descending))
		require.Equal(t, []string{"c", "d"}, scanKeys(st, []byte("c"), nil, Ascending))
		require.Equal(t, []string{"a", "b"}, scanKeys(st, nil, []byte("c"), Ascending))
		require.Equal(t, []string{"b", "a"}, scanKeys(st, nil, []byte("c"), Descending))
		require.Empty(t, scanKeys(st, []byte("x"), nil, Ascending))
		require.Empty(t, scanKeys(st, []byte("b"), []byte("b"), Ascending))
		require.Empty(t, scanKeys(st, []byte("b"), []byte("b"), Descending))
	})

	t.Run("scan seeks between stored keys", func(t *testing.T) {
		st := open(t)
		seed(t, st, "a", "c", "e")
		require.Equal(t, []string{"c", "e"}, scanKeys(st, []byte("b"), nil, Ascending))
		require.Equal(t, []string{"c", "a"}, scanKeys(st, nil, []byte("d"), Descending))
		require.Equal(t, []string{"e"}, scanKeys(st, []byte("d"), nil, Descending))
	})

	t.Run("scan values", func(t *testing.T) {
		st := open(t)
		seed(t, st, "a", "b")
		var got []string
		for k, v := range st.Scan(nil, nil, Ascending) {
			got = append(got, string(k)+"="+string(v))
		}
		require.Equal(t, []string{"a=v:a", "b=v:b"}, got)
	})

	t.Run("early break", func(t *testing.T) {
		st := open(t)
		seed(t, st, "a", "b", "c")
		var got []string
		for k := range st.Scan(nil, nil, Ascending) {
			got = append(got, string(k))
			if len(got) == 2 {
				break
			}
		}
		require.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("yields copies", func(t *testing.T) {
		st := open(t)
		require.NoError(t, st.Set([]byte("k"), []byte("value")))
		for k, v := range st.Scan(nil, nil, Ascending) {
			k[0] = 'X'
			v[0] = 'X'
		}
		got, err := st.Get([]byte("k"))
		require.NoError(t, err)
		require.Equal(t, []byte("value"), got)
	})
}

func seed(t testing.TB, st Storage, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, st.Set([]byte(k), []byte("v:"+k)))
	}
}

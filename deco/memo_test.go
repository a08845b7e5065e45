package deco_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/on-the-ground/deco_ive_go/deco"
	"github.com/on-the-ground/deco_ive_go/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemo_CachesByArguments(t *testing.T) {
	g := deco.Memo(deco.CountCalls(deco.Binary("add", "", add)))

	for i := 0; i < 3; i++ {
		res, err := g.Call(2, 3)
		require.NoError(t, err)
		assert.Equal(t, 5, res)
	}
	res, err := g.Call(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, res)

	assert.Equal(t, int64(2), g.Calls())
	assert.Equal(t, int64(2), g.State().CacheHits())
	assert.Equal(t, int64(2), g.State().CacheMisses())
}

func TestMemo_ZeroResultIsACacheHit(t *testing.T) {
	g := deco.Chain(
		deco.Unary("zero", "", func(int) (int, error) { return 0, nil }),
		deco.Memo[int, int],
		deco.CountCalls[int, int],
	)

	for i := 0; i < 2; i++ {
		res, err := g.Call(7)
		require.NoError(t, err)
		assert.Equal(t, 0, res)
	}
	assert.Equal(t, int64(1), g.Calls())
}

func TestMemo_EmptyResultIsACacheHit(t *testing.T) {
	g := deco.Chain(
		deco.New("empty", "", func(...string) (string, error) { return "", nil }),
		deco.Memo[string, string],
		deco.CountCalls[string, string],
	)

	_, _ = g.Call()
	_, _ = g.Call()
	assert.Equal(t, int64(1), g.Calls())
}

func TestMemo_FailuresAreNotCached(t *testing.T) {
	errFirst := errors.New("first call fails")
	attempts := 0
	g := deco.Memo(deco.Unary("flaky", "", func(n int) (int, error) {
		attempts++
		if attempts == 1 {
			return 0, errFirst
		}
		return n * 2, nil
	}))

	_, err := g.Call(4)
	assert.ErrorIs(t, err, errFirst)

	res, err := g.Call(4)
	require.NoError(t, err)
	assert.Equal(t, 8, res)

	res, err = g.Call(4)
	require.NoError(t, err)
	assert.Equal(t, 8, res)
	assert.Equal(t, 2, attempts)
}

func TestMemo_NamedArgumentNamesAreNotPartOfTheKey(t *testing.T) {
	sub := deco.NewFunc("sub", "", func(a deco.Args[int]) (int, error) {
		v := a.Values()
		return v[0] - v[1], nil
	})
	g := deco.Memo(deco.CountCalls(sub))

	res, err := g.CallArgs(deco.ArgsOf(5).With(deco.Named("b", 2)))
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	res, err = g.CallArgs(deco.ArgsOf(5).With(deco.Named("c", 2)))
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	res, err = g.Call(5, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	assert.Equal(t, int64(1), g.Calls())
}

func TestMemo_ArityIsPartOfTheKey(t *testing.T) {
	sum := deco.New("sum", "", func(args ...int) (int, error) {
		total := 0
		for _, a := range args {
			total += a
		}
		return total, nil
	})
	g := deco.Memo(deco.CountCalls(sum))

	res, err := g.Call(1)
	require.NoError(t, err)
	assert.Equal(t, 1, res)

	res, err = g.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	res, err = g.Call()
	require.NoError(t, err)
	assert.Equal(t, 0, res)

	assert.Equal(t, int64(3), g.Calls())
}

type NonComparable struct {
	Field []int // slices are not comparable
}

func (n NonComparable) String() string {
	return fmt.Sprintf("NonComparable%v", n.Field)
}

func TestMemo_StringerFallback(t *testing.T) {
	g := deco.Memo(deco.CountCalls(deco.Unary("length", "", func(n NonComparable) (int, error) {
		return len(n.Field), nil
	})))

	val, err := g.Call(NonComparable{Field: []int{1, 2, 3}})
	require.NoError(t, err)
	val2, err := g.Call(NonComparable{Field: []int{1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, 3, val)
	assert.Equal(t, 3, val2)
	assert.Equal(t, int64(1), g.Calls())
}

type TotallyInvalid struct {
	Field []int
}

func TestMemo_UnhashableArgument(t *testing.T) {
	g := deco.Memo(deco.CountCalls(deco.Unary("length", "", func(v TotallyInvalid) (int, error) {
		return len(v.Field), nil
	})))

	_, err := g.Call(TotallyInvalid{Field: []int{1}})
	assert.ErrorIs(t, err, deco.ErrUnhashableArg)
	assert.Equal(t, int64(0), g.Calls())
}

func TestMemo_KeyFunc(t *testing.T) {
	byFirst := deco.WithKeyFunc[int, int](func(a deco.Args[int]) []store.Key {
		return []store.Key{a.Positional[0]}
	})
	g := deco.MemoWith(byFirst)(deco.CountCalls(deco.Binary("add", "", add)))

	res, err := g.Call(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res)

	res, err = g.Call(1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, res)
	assert.Equal(t, int64(1), g.Calls())
}

func TestMemo_RistrettoStore(t *testing.T) {
	r, err := store.NewRistretto[int](100)
	require.NoError(t, err)
	defer r.Close()

	g := deco.MemoWith(deco.WithStore[int, int](r))(deco.CountCalls(deco.Binary("add", "", add)))

	for i := 0; i < 3; i++ {
		res, err := g.Call(20, 22)
		require.NoError(t, err)
		assert.Equal(t, 42, res)
	}
	assert.Equal(t, int64(1), g.Calls())
}

func TestMemo_EachWrapperHasItsOwnCache(t *testing.T) {
	memo := deco.MemoWith[int, int]()
	double := memo(deco.Unary("double", "", func(n int) (int, error) { return n * 2, nil }))
	square := memo(deco.Unary("square", "", func(n int) (int, error) { return n * n, nil }))

	d, err := double.Call(3)
	require.NoError(t, err)
	s, err := square.Call(3)
	require.NoError(t, err)

	assert.Equal(t, 6, d)
	assert.Equal(t, 9, s)
}

type Celsius float64

func (c Celsius) String() string {
	return fmt.Sprintf("%.0fC", float64(c))
}

func TestMemo_ComparableStringerIsKeyedByValue(t *testing.T) {
	g := deco.Memo(deco.CountCalls(deco.Unary("double", "", func(c Celsius) (float64, error) {
		return float64(c) * 2, nil
	})))

	res, err := g.Call(20.1)
	require.NoError(t, err)
	assert.InDelta(t, 40.2, res, 1e-9)

	res, err = g.Call(20.4)
	require.NoError(t, err)
	assert.InDelta(t, 40.8, res, 1e-9)

	assert.Equal(t, int64(2), g.Calls())
}

type node struct {
	v int
}

func (n *node) String() string {
	return fmt.Sprintf("node(%d)", n.v)
}

func TestMemo_NilPointerStringer(t *testing.T) {
	g := deco.Memo(deco.CountCalls(deco.Unary("isLeaf", "", func(n *node) (bool, error) {
		return n == nil, nil
	})))

	for i := 0; i < 2; i++ {
		var res bool
		var err error
		require.NotPanics(t, func() { res, err = g.Call(nil) })
		require.NoError(t, err)
		assert.True(t, res)
	}
	assert.Equal(t, int64(1), g.Calls())
}

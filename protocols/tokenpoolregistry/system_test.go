package tokenpoolregistry

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"sync"
	"testing"

	"github.com/defistate/magicswap-client-go/protocols/magicswap"
	"github.com/defistate/magicswap-client-go/protocols/tokenregistry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(id, token0, token1 int64) magicswap.Pool {
	return magicswap.Pool{
		Address:  addr(id),
		Token0:   tokenregistry.Token{Address: addr(token0)},
		Token1:   tokenregistry.Token{Address: addr(token1)},
		Reserve0: big.NewInt(1000),
		Reserve1: big.NewInt(1000),
	}
}

func TestTokenPoolSystem(t *testing.T) {
	t.Run("API_Correctness_AddAndRemove", func(t *testing.T) {
		s := NewTokenPoolSystem(1000)
		s.AddPool(testPool(101, 10, 20))
		s.AddPool(testPool(102, 10, 30))
		s.AddPool(testPool(103, 10, 20))

		assert.Equal(t, addrs(101, 102, 103), s.PoolsForToken(addr(10)))
		assert.Equal(t, addrs(101, 103), s.PoolsForToken(addr(20)))
		assert.Equal(t, addrs(102), s.PoolsForToken(addr(30)))

		s.RemovePool(addr(101))
		assert.Equal(t, addrs(102, 103), s.PoolsForToken(addr(10)))
		assert.Equal(t, addrs(103), s.PoolsForToken(addr(20)))

		s.RemovePools(addrs(102, 103))
		assert.Nil(t, s.PoolsForToken(addr(10)))
	})

	t.Run("EmptyPoolsAreNotRoutable", func(t *testing.T) {
		drained := testPool(101, 10, 20)
		drained.Reserve1 = big.NewInt(0)

		s := NewTokenPoolSystemFromPools([]magicswap.Pool{drained, testPool(102, 10, 30)}, 1000)
		assert.Nil(t, s.PoolsForToken(addr(20)))
		assert.Equal(t, addrs(102), s.PoolsForToken(addr(10)))
	})

	t.Run("Apply", func(t *testing.T) {
		s := NewTokenPoolSystemFromPools([]magicswap.Pool{testPool(101, 10, 20), testPool(102, 10, 30)}, 1000)

		drained := testPool(101, 10, 20)
		drained.Reserve0 = big.NewInt(0)
		s.Apply(magicswap.SystemDiff{
			Updates:   []magicswap.Pool{drained},
			Deletions: addrs(102),
			Additions: []magicswap.Pool{testPool(104, 20, 30)},
		})

		assert.Equal(t, addrs(104), s.PoolsForToken(addr(20)))
		assert.Nil(t, s.PoolsForToken(addr(10)))

		s.Apply(magicswap.SystemDiff{Updates: []magicswap.Pool{testPool(101, 10, 20)}})
		assert.Equal(t, addrs(101), s.PoolsForToken(addr(10)), "refilled pools rejoin the graph")
	})

	t.Run("View_ReturnsCopy", func(t *testing.T) {
		s := NewTokenPoolSystem(1000)
		s.AddPool(testPool(101, 10, 20))

		view1 := s.View()
		require.Len(t, view1.Tokens, 2)
		require.NotEmpty(t, view1.EdgePools)
		require.NotEmpty(t, view1.EdgePools[0])

		originalToken := view1.Tokens[0]
		originalPoolIndex := view1.EdgePools[0][0]
		view1.Tokens[0] = addr(9999)
		view1.EdgePools[0][0] = 8888

		view2 := s.View()
		assert.Equal(t, originalToken, view2.Tokens[0])
		assert.Equal(t, originalPoolIndex, view2.EdgePools[0][0])
	})

	t.Run("Concurrency_ReadsAndWrites", func(t *testing.T) {
		s := NewTokenPoolSystem(50)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		writerWg := &sync.WaitGroup{}
		writerWg.Add(1)
		go func() {
			defer writerWg.Done()
			const batchSize = 20
			var toAdd []magicswap.Pool
			var toRemove []int64
			for i := int64(0); i < 200; i++ {
				toAdd = append(toAdd, testPool(1000+i, i, i+1))
				if i%10 == 0 && i > 5 {
					toRemove = append(toRemove, 1000+i-5)
				}
				if len(toAdd) >= batchSize {
					s.AddPools(toAdd)
					s.RemovePools(addrs(toRemove...))
					toAdd, toRemove = nil, nil
				}
			}
			if len(toAdd) > 0 {
				s.AddPools(toAdd)
				s.RemovePools(addrs(toRemove...))
			}
		}()

		readerWg := &sync.WaitGroup{}
		numReaders := 10
		readerWg.Add(numReaders)
		for i := 0; i < numReaders; i++ {
			isViewReader := i%2 == 0
			go func(isViewReader bool) {
				defer readerWg.Done()
				for {
					select {
					case <-ctx.Done():
						return
					default:
						if isViewReader {
							_ = s.View()
						} else {
							_ = s.PoolsForToken(addr(int64(rand.Intn(150))))
						}
					}
				}
			}(isViewReader)
		}

		writerWg.Wait()
		cancel()
		readerWg.Wait()

		finalView := s.View()
		assert.NotEmpty(t, finalView.Tokens)
		assert.NotEmpty(t, finalView.Pools)
	})
}

func TestNewTokenPoolSystemFromView(t *testing.T) {
	t.Parallel()
	originalView := &TokenPoolRegistryView{
		Tokens:      addrs(10, 20),
		Pools:       addrs(100),
		Adjacency:   [][]int{{0}, nil},
		EdgeTargets: []int{1},
		EdgePools:   [][]int{{0}},
	}

	s := NewTokenPoolSystemFromView(originalView, 500)
	require.NotNil(t, s)
	assert.Equal(t, addrs(100), s.PoolsForToken(addr(10)))

	systemView := s.View()
	assert.Equal(t, originalView.Tokens, systemView.Tokens)
	assert.Equal(t, originalView.Pools, systemView.Pools)
}

func BenchmarkTokenPoolSystem(b *testing.B) {
	for _, size := range []int{100, 1000} {
		b.Run(fmt.Sprintf("Size%d", size), func(b *testing.B) {
			pools := make([]magicswap.Pool, size)
			for i := range pools {
				pools[i] = testPool(int64(100000+i), int64(i), int64(i+1))
			}
			s := NewTokenPoolSystemFromPools(pools, 1000)

			b.Run("View", func(b *testing.B) {
				b.ReportAllocs()
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						_ = s.View()
					}
				})
			})

			b.Run("PoolsForToken", func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					_ = s.PoolsForToken(addr(int64(i % size)))
				}
			})
		})
	}
}

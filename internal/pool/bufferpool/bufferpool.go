// Copyright (c) 2019 The Gnet Authors. All rights reserved.
// Copyright (c) 2016 Aliaksandr Valialkin, VertaMedia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Use of this source code is governed by a MIT license that can be found
// at https://github.com/valyala/bytebufferpool/blob/master/LICENSE

// Package bufferpool 实现了编码输出缓冲区的对象池，用于降低 GC 压力。
package bufferpool

import (
	"math/bits"
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/lk2023060901/encoder-go/pkg/buffer"
)

const (
	minBitSize = 6 // 2**6=64，为典型 CPU cache line 大小
	steps      = 20

	minSize = 1 << minBitSize

	calibrateCallsThreshold = 42000
	maxPercentile           = 0.95
)

// Pool 表示输出缓冲区的对象池。
//
// 内部按归还时的输出长度统计分布，周期性地校准新建缓冲区的默认大小，
// 以及允许回收的最大容量；过大的缓冲区直接丢弃，交给 GC。
type Pool struct {
	calls       [steps]atomic.Uint64
	calibrating atomic.Bool

	defaultSize atomic.Uint64
	maxSize     atomic.Uint64

	pool sync.Pool
}

var builtinPool Pool

// Default 返回进程级默认池。
func Default() *Pool { return &builtinPool }

// Get 从默认池中获取一个空的缓冲区。
func Get() *buffer.Buffer { return builtinPool.Get() }

// Put 将缓冲区归还到默认池中。
func Put(b *buffer.Buffer) { builtinPool.Put(b) }

// Get 从 Pool 中获取一个长度为 0 的缓冲区。
func (p *Pool) Get() *buffer.Buffer {
	if v := p.pool.Get(); v != nil {
		return v.(*buffer.Buffer)
	}
	return buffer.New(int(p.defaultSize.Load()))
}

// Put 将通过 Get 获取的缓冲区归还到 Pool 中。
//
// 注意：归还后的缓冲区不允许再被访问。
func (p *Pool) Put(b *buffer.Buffer) {
	idx := index(b.Len())

	if p.calls[idx].Inc() > calibrateCallsThreshold {
		p.calibrate()
	}

	maxSize := int(p.maxSize.Load())
	if maxSize == 0 || b.Cap() <= maxSize {
		b.Reset()
		p.pool.Put(b)
	}
}

func (p *Pool) calibrate() {
	if !p.calibrating.CompareAndSwap(false, true) {
		return
	}
	defer p.calibrating.Store(false)

	a := make(callSizes, 0, steps)
	var callsSum uint64
	for i := uint64(0); i < steps; i++ {
		calls := p.calls[i].Swap(0)
		callsSum += calls
		a = append(a, callSize{
			calls: calls,
			size:  minSize << i,
		})
	}
	sort.Sort(a)

	defaultSize := a[0].size
	maxSize := defaultSize

	maxSum := uint64(float64(callsSum) * maxPercentile)
	callsSum = 0
	for i := 0; i < steps; i++ {
		if callsSum > maxSum {
			break
		}
		callsSum += a[i].calls
		if size := a[i].size; size > maxSize {
			maxSize = size
		}
	}

	p.defaultSize.Store(defaultSize)
	p.maxSize.Store(maxSize)
}

type callSize struct {
	calls uint64
	size  uint64
}

type callSizes []callSize

func (ci callSizes) Len() int           { return len(ci) }
func (ci callSizes) Less(i, j int) bool { return ci[i].calls > ci[j].calls }
func (ci callSizes) Swap(i, j int)      { ci[i], ci[j] = ci[j], ci[i] }

func index(n int) int {
	n--
	n >>= minBitSize
	idx := 0
	if n > 0 {
		idx = bits.Len(uint(n))
	}
	if idx >= steps {
		idx = steps - 1
	}
	return idx
}

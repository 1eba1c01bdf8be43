// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package typeutil

import "slices"

// OrderedMap 是记录插入顺序的映射类型。
//
// 对已存在的 key 再次 Set 只更新值，不改变其位置；Delete 后重新插入的 key 排在末尾。
// OrderedMap 不是并发安全的。
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap 创建一个空的 OrderedMap，capacity 为预分配的容量提示。
func NewOrderedMap[K comparable, V any](capacity ...int) *OrderedMap[K, V] {
	n := 0
	if len(capacity) > 0 && capacity[0] > 0 {
		n = capacity[0]
	}
	return &OrderedMap[K, V]{
		keys:   make([]K, 0, n),
		values: make(map[K]V, n),
	}
}

// Set 写入 key 对应的值。
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get 返回 key 对应的值以及是否存在。
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete 删除 key，返回 key 之前是否存在。
func (m *OrderedMap[K, V]) Delete(key K) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	if idx := slices.Index(m.keys, key); idx >= 0 {
		m.keys = slices.Delete(m.keys, idx, idx+1)
	}
	return true
}

// Len 返回元素个数。
func (m *OrderedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys 按插入顺序返回所有 key 的拷贝。
func (m *OrderedMap[K, V]) Keys() []K {
	return slices.Clone(m.keys)
}

// Range 按插入顺序遍历，fn 返回 false 时停止。
func (m *OrderedMap[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// RangeEntries 以无类型的方式遍历所有条目，供编码引擎使用。
//
// ordered 为 true 时按插入顺序遍历；否则按底层 map 的迭代顺序遍历，顺序不做保证。
// fn 返回的第一个错误会中止遍历并原样返回。
func (m *OrderedMap[K, V]) RangeEntries(ordered bool, fn func(key, value any) error) error {
	if m == nil {
		return nil
	}
	if ordered {
		for _, k := range m.keys {
			if err := fn(k, m.values[k]); err != nil {
				return err
			}
		}
		return nil
	}
	for k, v := range m.values {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

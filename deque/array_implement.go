package deque

import "time"

type ArrDeque struct {
	arr []time.Duration
	// 头部元素下标
	start int
	// 元素个数
	size int
}

var _ Deque = (*ArrDeque)(nil)

// 工厂方法
func NewArrDeque(capacity int) *ArrDeque {
	if capacity < 1 {
		capacity = 1
	}
	return &ArrDeque{
		arr: make([]time.Duration, capacity),
	}
}

func (ad *ArrDeque) Size() int {
	return ad.size
}

func (ad *ArrDeque) index(i int) int {
	return (ad.start + i) % len(ad.arr)
}

func (ad *ArrDeque) Traverse(f func(i int, d time.Duration)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque) AddLast(d time.Duration) {
	if ad.IsFull() {
		// 覆盖最旧的元素
		ad.arr[ad.start] = d
		ad.start = ad.index(1)
		return
	}
	ad.arr[ad.index(ad.size)] = d
	ad.size++
}

func (ad *ArrDeque) IsFull() bool {
	return ad.size == len(ad.arr)
}

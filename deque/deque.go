/**
 *
 * 利用数组实现的定长队列，用于记录最近若干帧的耗时
 * 队列满时从头部淘汰旧数据，形成滑动窗口
 *
 */

package deque

import "time"

type Deque interface {
	// 队列的长度
	Size() int

	// 正向遍历，从最旧的元素开始
	Traverse(f func(i int, d time.Duration))

	// 在队列结尾增加一个元素，满时淘汰头部元素
	AddLast(d time.Duration)

	IsFull() bool
}

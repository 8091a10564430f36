// Package clock provides clock interfaces.
package clock

import "time"

// Clock 时间源接口
//
// keystore 默认文件名等需要当前时间的地方通过它取时间，测试中可替换为固定时钟。
type Clock interface {
	// Now 获取当前时间
	Now() time.Time

	// Since 计算从指定时间到现在的持续时间
	Since(t time.Time) time.Duration
}

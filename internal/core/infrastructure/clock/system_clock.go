// Package clock 提供时间源实现
package clock

import (
	"time"

	"go.uber.org/fx"

	infraClock "github.com/weisyn/ethwallet/pkg/interfaces/infrastructure/clock"
)

// SystemClock 使用系统真实时间
type SystemClock struct{}

func NewSystemClock() infraClock.Clock { return &SystemClock{} }

func (c *SystemClock) Now() time.Time                  { return time.Now() }
func (c *SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// FixedClock 测试用时钟，时间可控
type FixedClock struct{ currentTime time.Time }

func NewFixedClock(initial time.Time) *FixedClock { return &FixedClock{currentTime: initial} }

func (c *FixedClock) Now() time.Time                  { return c.currentTime }
func (c *FixedClock) Since(t time.Time) time.Duration { return c.currentTime.Sub(t) }

// Advance 推进时间
func (c *FixedClock) Advance(d time.Duration) { c.currentTime = c.currentTime.Add(d) }

var (
	_ infraClock.Clock = (*SystemClock)(nil)
	_ infraClock.Clock = (*FixedClock)(nil)
)

// Module 返回时钟模块
func Module() fx.Option {
	return fx.Module("clock",
		fx.Provide(NewSystemClock),
	)
}

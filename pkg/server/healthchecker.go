package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// CheckFunc adapts a function to HealthChecker.
type CheckFunc func(ctx context.Context) bool

func (f CheckFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

// All is healthy only when every checker is.
func All(checkers ...HealthChecker) HealthChecker {
	return CheckFunc(func(ctx context.Context) bool {
		for _, hc := range checkers {
			if !hc.Healthy(ctx) {
				return false
			}
		}
		return true
	})
}

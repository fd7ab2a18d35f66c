package automation

import "time"

// RetryPolicy bounds re-execution of rules whose handler failed with an
// infrastructure error. The zero value keeps the plain behaviour: nothing is
// recorded and the rule is retried on every tick.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Failure is the bookkeeping written for one failed execution.
type Failure struct {
	Attempts      int
	LastError     string
	NextAttemptAt *time.Time
	DeadLettered  bool
}

func (p RetryPolicy) Enabled() bool {
	return p.MaxAttempts > 0 || p.BaseDelay > 0
}

// Delay returns min(BaseDelay*2^(attempts-1), MaxDelay).
func (p RetryPolicy) Delay(attempts int) time.Duration {
	if p.BaseDelay <= 0 || attempts <= 0 {
		return 0
	}
	d := p.BaseDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
		// overflow
		if d <= 0 {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// Next computes the bookkeeping after a failure. previousAttempts is the
// attempt count stored on the rule before this execution.
func (p RetryPolicy) Next(previousAttempts int, cause error, now time.Time) Failure {
	attempts := previousAttempts + 1
	f := Failure{Attempts: attempts}
	if cause != nil {
		f.LastError = cause.Error()
	}
	if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
		f.DeadLettered = true
		return f
	}
	if d := p.Delay(attempts); d > 0 {
		next := now.Add(d)
		f.NextAttemptAt = &next
	}
	return f
}

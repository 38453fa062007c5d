package resilient

import (
	"context"
	"math/rand"
	"time"

	"github.com/RassulYunussov/rwsclient/internal/common"
)

// One attempt against the service. A non-nil error means no HTTP response was received.
type Attempt func(ctx context.Context) (*common.Response, error)

// Retries transport failures only: any HTTP response ends the loop.
type Policy struct {
	maxRetry  uint8
	backoffs  []int64
	permanent func(error) bool
}

func CreatePolicy(retryParameters *RetryParameters, permanent func(error) bool) *Policy {
	policy := Policy{permanent: permanent} // default to not retry
	if retryParameters != nil {
		policy.maxRetry = retryParameters.MaxRetry
		policy.backoffs = make([]int64, uint16(retryParameters.MaxRetry))
		int64BackoffTimeout := int64(retryParameters.BackoffTimeout)
		for i := int64(0); i < int64(retryParameters.MaxRetry); i++ {
			policy.backoffs[i] = (i + 1) * int64BackoffTimeout
		}
	}
	return &policy
}

// Execute returns the response of the first attempt that received one,
// or the last transport failure unchanged, along with the number of attempts made.
func (p *Policy) Execute(ctx context.Context, attempt Attempt) (*common.Response, int, error) {
	var resp *common.Response
	var err error
	attempts := 0
	for i := uint16(0); i <= uint16(p.maxRetry); i++ {
		attempts++
		resp, err = attempt(ctx)
		if err == nil {
			return resp, attempts, nil
		}
		if ctx.Err() != nil || (p.permanent != nil && p.permanent(err)) {
			return nil, attempts, err
		}
		if !p.backoff(ctx, i) {
			return nil, attempts, err
		}
	}
	return nil, attempts, err
}

func (p *Policy) backoff(ctx context.Context, step uint16) bool {
	if step == uint16(p.maxRetry) || p.backoffs[step] <= 0 {
		return true
	}
	delay := p.backoffs[step]
	if half := delay >> 1; half > 0 {
		delay += rand.Int63n(half)
	}
	timer := time.NewTimer(time.Duration(delay))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

package cb

import (
	"context"
	"sync"

	"github.com/RassulYunussov/rwsclient/internal/common"
)

// Only transport failures count against a breaker:
// any HTTP response, whatever its status, is a healthy round trip.
type circuitBreakerBackedSender struct {
	sender          common.Sender
	parameters      CircuitBreakerParameters
	circuitBreakers sync.Map
}

type call struct {
	ctx      context.Context
	resource string
	request  *common.Request
}

func CreateCircuitBreakerSender(sender common.Sender, circuitBreakerParameters *CircuitBreakerParameters) common.Sender {
	return &circuitBreakerBackedSender{
		sender:     sender,
		parameters: *circuitBreakerParameters,
	}
}

func (c *circuitBreakerBackedSender) Send(ctx context.Context, resource string, r *common.Request) (*common.Response, error) {
	cb := c.getCircuitBreaker(resource)
	return cb.execute(c.do, &call{ctx: ctx, resource: resource, request: r})
}

func (c *circuitBreakerBackedSender) getCircuitBreaker(resource string) *circuitBreaker[call, common.Response] {
	if cb, ok := c.circuitBreakers.Load(resource); ok {
		return cb.(*circuitBreaker[call, common.Response])
	}
	cb, _ := c.circuitBreakers.LoadOrStore(resource, newCircuitBreaker[call, common.Response](&c.parameters, resource))
	return cb.(*circuitBreaker[call, common.Response])
}

func (c *circuitBreakerBackedSender) do(call *call) (*common.Response, error) {
	return c.sender.Send(call.ctx, call.resource, call.request)
}

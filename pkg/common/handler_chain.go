package common

// HandlerChain represents an ordered list of handlers
type HandlerChain []Handler

// NewHandlerChain creates a new handler chain
func NewHandlerChain(handlers ...Handler) HandlerChain {
	return handlers
}

// Append adds handlers to the end of the chain.
// The receiver is never modified.
func (c HandlerChain) Append(handlers ...Handler) HandlerChain {
	result := make(HandlerChain, 0, len(c)+len(handlers))
	result = append(result, c...)
	return append(result, handlers...)
}

// Prepend adds handlers to the beginning of the chain
func (c HandlerChain) Prepend(handlers ...Handler) HandlerChain {
	result := make(HandlerChain, len(handlers)+len(c))
	copy(result, handlers)
	copy(result[len(handlers):], c)
	return result
}

// Then appends a final handler and returns the chain as a single Handler
func (c HandlerChain) Then(h Handler) Handler {
	return c.Append(h).Handler()
}

// Handler returns the chain as a single Handler.
// The returned handler runs the chain and, once the last handler delegates,
// calls the next function it was given.
func (c HandlerChain) Handler() Handler {
	return func(req *Request, res *Response, next Next) error {
		return c.run(0, req, res, next)
	}
}

func (c HandlerChain) run(i int, req *Request, res *Response, tail Next) error {
	if i >= len(c) {
		if tail == nil {
			return nil
		}
		return tail()
	}
	return c[i](req, res, func() error {
		return c.run(i+1, req, res, tail)
	})
}

package cache

import "golang.org/x/sync/singleflight"

// RequestCoalescer collapses concurrent cache-miss fetches for the same
// key into a single in-flight call, so a burst of requests arriving right
// after a TieredCache entry expires triggers one storage query instead of
// one per request.
type RequestCoalescer struct {
	group singleflight.Group
}

// NewCoalescer creates an empty RequestCoalescer.
func NewCoalescer() *RequestCoalescer {
	return &RequestCoalescer{}
}

// Do runs fn for key if no call for key is already in flight, otherwise it
// waits for and returns the in-flight call's result. shared reports
// whether the result was shared with another caller.
func (c *RequestCoalescer) Do(key string, fn func() ([]byte, error)) (data []byte, shared bool, err error) {
	v, err, shared := c.group.Do(key, func() (any, error) { return fn() })
	if err != nil {
		return nil, shared, err
	}
	return v.([]byte), shared, nil
}

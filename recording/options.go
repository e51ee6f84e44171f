package recording

// Option configures a Context.
type Option func(*Context)

// FailCommandBufferAfter makes every command buffer after the first n fail
// to be created. A negative n disables the failure.
func FailCommandBufferAfter(n int) Option {
	return func(c *Context) {
		c.failBuffersAfter = n
	}
}

// FailTextureAllocationAfter makes every texture allocation after the first
// n fail. A negative n disables the failure.
func FailTextureAllocationAfter(n int) Option {
	return func(c *Context) {
		c.failTexturesAfter = n
	}
}

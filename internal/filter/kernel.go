package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for sigma.
//
// The kernel has 2*ceil(3*sigma)+1 taps. A non-positive sigma yields the
// identity kernel [1].
func GaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}

	half := int(math.Ceil(sigma * 3))
	kernel := make([]float64, half*2+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// KernelSize returns the tap count GaussianKernel produces for sigma.
func KernelSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	return int(math.Ceil(sigma*3))*2 + 1
}

// kernelCache memoizes kernels keyed by sigma quantized to 1/100.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float64
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float64),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(sigma float64) []float64 {
	key := int(math.Round(sigma * 100))

	c.mu.RLock()
	k, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	k = GaussianKernel(float64(key) / 100)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		n := 0
		for key := range c.cache {
			delete(c.cache, key)
			n++
			if n >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = k
	c.mu.Unlock()
	return k
}

func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedGaussianKernel returns a shared kernel for sigma. Callers must not
// modify the returned slice.
func CachedGaussianKernel(sigma float64) []float64 {
	return defaultKernelCache.get(sigma)
}

package galaxy

import "math"

// Scatter salts. Each placement axis mixes a distinct salt so one item's
// coordinates are uncorrelated with each other.
const (
	saltVaultX uint32 = iota + 1
	saltVaultY
	saltVaultZ
	saltCarriedX
	saltCarriedY
	saltCarriedZ
	saltBucketAngle
	saltBucketRadius
	saltBucketDepth
)

// scatterHash folds an item key, a per-axis salt and the layout seed into a
// single 64-bit value. FNV-1a over the key, then salt and seed mixed in with
// a golden-ratio multiply so nearby seeds produce unrelated layouts.
func scatterHash(key string, salt uint32, seed int64) uint64 {
	h := uint64(14695981039346656037)
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= 1099511628211
	}
	h ^= uint64(salt) * 0x9E3779B97F4A7C15
	h ^= uint64(seed)
	h *= 1099511628211
	return h
}

// scatter01 returns a deterministic value in [0, 1) for the key/salt/seed
// triple. The hash is pushed through a sine fold, which costs one math.Sin
// but decorrelates the low bits far better than a plain modulo.
func scatter01(key string, salt uint32, seed int64) float64 {
	h := scatterHash(key, salt, seed)
	s := math.Sin(float64(h%1000003)*0.001) * 43758.5453123
	return s - math.Floor(s)
}

// scatterSigned returns a deterministic value in [-1, 1).
func scatterSigned(key string, salt uint32, seed int64) float64 {
	return scatter01(key, salt, seed)*2 - 1
}

// scatterIn returns a deterministic value inside the range.
func scatterIn(key string, salt uint32, seed int64, r Range) float64 {
	return r.At(scatter01(key, salt, seed))
}

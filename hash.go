package growthbook

import (
	"fmt"
	"hash/fnv"
)

// Bucketing hash function, mapping a seed and an attribute value to a
// float in [0, 1). Version 1 hashes value+seed once; version 2 hashes
// seed+value, stringifies the result and hashes again for better
// distribution. Unknown versions return nil.
func hash(seed string, value string, version int) *float64 {
	switch version {
	case 2:
		v := float64(hashFnv32a(fmt.Sprint(hashFnv32a(seed+value)))%10000) / 10000
		return &v
	case 0, 1:
		v := float64(hashFnv32a(value+seed)%1000) / 1000
		return &v
	default:
		return nil
	}
}

// Simple wrapper around the standard library FNV32a hash function.
func hashFnv32a(s string) uint32 {
	hash := fnv.New32a()
	hash.Write([]byte(s))
	return hash.Sum32()
}

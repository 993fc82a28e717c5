package utils

import "hash/fnv"

// Hash is a stable FNV-1a digest of s.
func Hash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// Pick deterministically selects one of options for key, salted so that
// different fields of the same key vary independently.
func Pick(key, salt string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[Hash(salt+":"+key)%uint64(len(options))]
}

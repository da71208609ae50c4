package service

import (
	"context"
	"strconv"
)

func listKey(prefix string, generation int64) string {
	return prefix + ":" + strconv.FormatInt(generation, 10)
}

// listGeneration returns the generation to read and fill under. ok is false
// when the cache is disabled or the generation could not be read.
func listGeneration(ctx context.Context, cache ListCache, key string) (generation int64, ok bool, err error) {
	if cache == nil {
		return 0, false, nil
	}
	generation, err = cache.Counter(ctx, key)
	if err != nil {
		return 0, false, err
	}
	return generation, true, nil
}

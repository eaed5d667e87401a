package storage

import "context"

// PrefixedStorage namespaces every key of an underlying medium,
// so several users can share one backend without seeing each other's data.
type PrefixedStorage struct {
	medium Medium
	prefix string
}

func Prefixed(medium Medium, prefix string) *PrefixedStorage {
	return &PrefixedStorage{medium: medium, prefix: prefix}
}

func (s *PrefixedStorage) Read(ctx context.Context, key string) (string, bool, error) {
	return s.medium.Read(ctx, s.prefix+key)
}

func (s *PrefixedStorage) Write(ctx context.Context, key, value string) error {
	return s.medium.Write(ctx, s.prefix+key, value)
}

func (s *PrefixedStorage) Delete(ctx context.Context, key string) error {
	return s.medium.Delete(ctx, s.prefix+key)
}

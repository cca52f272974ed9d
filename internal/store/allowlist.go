package store

import (
	"context"
	"slices"
)

// AllowList is the durable set of user-approved URLs. URLs on the list
// are exempted from scoring: the panel shows a trusted state without
// running the engine.
//
// Every call goes through the store so that independent contexts
// observe each other's writes; no membership state is cached between
// calls.
type AllowList struct {
	kv *KV
}

// NewAllowList creates an AllowList over the given store.
func NewAllowList(kv *KV) *AllowList {
	return &AllowList{kv: kv}
}

// Contains reports whether url is on the allow-list.
// Membership is exact string equality against the stored URLs.
func (a *AllowList) Contains(ctx context.Context, url string) (bool, error) {
	urls, err := a.load(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(urls, url), nil
}

// Add inserts url into the allow-list. Adding an already-present URL is
// a no-op; the list keeps set semantics.
func (a *AllowList) Add(ctx context.Context, url string) error {
	urls, err := a.load(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(urls, url) {
		return nil
	}
	return a.kv.Set(ctx, KeySafeList, append(urls, url))
}

// Remove deletes url from the allow-list. Removing an absent URL is a
// no-op.
func (a *AllowList) Remove(ctx context.Context, url string) error {
	urls, err := a.load(ctx)
	if err != nil {
		return err
	}
	filtered := slices.DeleteFunc(urls, func(u string) bool { return u == url })
	if len(filtered) == len(urls) {
		return nil
	}
	return a.kv.Set(ctx, KeySafeList, filtered)
}

// All returns every allow-listed URL in insertion order.
func (a *AllowList) All(ctx context.Context) ([]string, error) {
	return a.load(ctx)
}

// load reads the current list, treating an absent key as empty.
func (a *AllowList) load(ctx context.Context) ([]string, error) {
	urls := make([]string, 0)
	if _, err := a.kv.Get(ctx, KeySafeList, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

package syncservice

import "github.com/mlukyanov/quizpoints/internal/domain"

// applyPatch folds a queued offline mutation into the freshly fetched
// authoritative account. Collection fields merge by set union, which makes
// a crashed-and-replayed action harmless. Scalar fields are overwritten
// with the queued value: last writer wins, so a concurrent remote edit to
// the same scalar can be shadowed. That matches the product's single-device
// offline model; it is not a CRDT.
func applyPatch(acc *domain.Account, patch domain.AccountPatch) {
	if patch.Balance != nil {
		acc.Balance = *patch.Balance
	}
	if patch.Tokens != nil {
		acc.Tokens = *patch.Tokens
	}
	if patch.GamesPlayed != nil {
		acc.GamesPlayed = *patch.GamesPlayed
	}
	acc.Badges = union(acc.Badges, patch.Badges)
	acc.UnlockedThemes = union(acc.UnlockedThemes, patch.UnlockedThemes)
	acc.CompletedLessons = union(acc.CompletedLessons, patch.CompletedLessons)
}

// union keeps the base order and appends unseen values in patch order, so
// replaying the same patch twice is a no-op.
func union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, v := range base {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		base = append(base, v)
	}
	return base
}

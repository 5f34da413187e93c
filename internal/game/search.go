package game

import "slices"

// sortedHand returns a copy of hand in Card order.
func sortedHand(hand []Card) []Card {
	sorted := slices.Clone(hand)
	slices.SortFunc(sorted, Card.Compare)
	return sorted
}

// AttackCombos enumerates every legal attack from hand, each listed once.
// When yieldAllowed, the yield comes first.
func AttackCombos(hand []Card, yieldAllowed bool) []Combo {
	var combos []Combo
	if yieldAllowed {
		combos = append(combos, Combo{})
	}

	sorted := sortedHand(hand)
	var work Combo
	for i := range sorted {
		combos = attackDFS(sorted, i, &work, combos)
	}

	for i := range combos {
		combos[i].LoadDetails()
	}
	return combos
}

// attackDFS extends work with sorted[i]. A combo that fails Valid has no
// valid superset, so its branch is cut.
func attackDFS(sorted []Card, i int, work *Combo, out []Combo) []Combo {
	bit := uint32(1) << i
	work.push(sorted[i], bit)
	if work.Valid(false) {
		out = append(out, work.clone())
		for j := i + 1; j < len(sorted); j++ {
			out = attackDFS(sorted, j, work, out)
		}
	}
	work.pop(bit)
	return out
}

// DefenseCombos enumerates every subset of hand whose base defense covers
// damage. Supersets of a sufficient subset are listed too.
func DefenseCombos(hand []Card, damage int) []Combo {
	var combos []Combo
	sorted := sortedHand(hand)
	var work Combo
	for i := range sorted {
		combos = defenseDFS(sorted, i, damage, &work, combos)
	}
	return combos
}

func defenseDFS(sorted []Card, i, damage int, work *Combo, out []Combo) []Combo {
	bit := uint32(1) << i
	work.push(sorted[i], bit)
	if work.BaseDefense() >= damage {
		out = append(out, work.clone())
	}
	for j := i + 1; j < len(sorted); j++ {
		out = defenseDFS(sorted, j, damage, work, out)
	}
	work.pop(bit)
	return out
}

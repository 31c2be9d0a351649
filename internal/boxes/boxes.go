// Package boxes assigns invoice line items to shipping boxes and groups them
// for packing-list rendering.
package boxes

import (
	"sort"

	"expodocs/internal/domain"
)

// Resolve fills in the BoxNumber of every item, in place.
//
// With one box (or none declared) every item goes to box 1. With multiple
// boxes, explicit assignments inside [1, totalBoxes] are kept; anything else
// is discarded and the remaining items are dealt round-robin across the
// boxes in their original order.
func Resolve(items []domain.InvoiceItem, totalBoxes int) {
	if totalBoxes <= 1 {
		for i := range items {
			items[i].BoxNumber = 1
		}
		return
	}

	var unassigned []int
	for i := range items {
		if items[i].BoxNumber < 1 || items[i].BoxNumber > totalBoxes {
			items[i].BoxNumber = 0
			unassigned = append(unassigned, i)
		}
	}
	for n, idx := range unassigned {
		items[idx].BoxNumber = (n % totalBoxes) + 1
	}
}

// Group is the contents of one shipping box.
type Group struct {
	Box   int
	Items []domain.InvoiceItem
}

// Kgs is the net weight of the box.
func (g Group) Kgs() float64 {
	total := 0.0
	for _, it := range g.Items {
		total += it.QtyKgs
	}
	return total
}

// Pcs is the piece count of the box.
func (g Group) Pcs() int {
	total := 0
	for _, it := range g.Items {
		total += it.Pcs
	}
	return total
}

// Groups buckets items by box number in ascending box order. Items with no
// assignment fall into box 1. Item order inside a box follows invoice order.
func Groups(items []domain.InvoiceItem) []Group {
	byBox := make(map[int][]domain.InvoiceItem)
	for _, it := range items {
		box := it.BoxNumber
		if box < 1 {
			box = 1
		}
		byBox[box] = append(byBox[box], it)
	}

	nums := make([]int, 0, len(byBox))
	for n := range byBox {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	groups := make([]Group, 0, len(nums))
	for _, n := range nums {
		groups = append(groups, Group{Box: n, Items: byBox[n]})
	}
	return groups
}

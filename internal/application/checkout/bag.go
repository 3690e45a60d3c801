package checkout

import (
	"github.com/penwyp/go-pos/internal/core/model"
	"github.com/shopspring/decimal"
)

// Bag collects items before checkout. Lines keep insertion order.
type Bag struct {
	lines []model.BagLine
}

func NewBag() *Bag {
	return &Bag{}
}

// Add puts one unit of item in the bag, incrementing an existing line.
func (b *Bag) Add(item string, price decimal.Decimal) {
	if i := b.index(item); i >= 0 {
		b.lines[i].Qty++
		return
	}
	b.lines = append(b.lines, model.BagLine{Item: item, Price: price, Qty: 1})
}

// Increment adds one unit to an existing line.
func (b *Bag) Increment(item string) bool {
	i := b.index(item)
	if i < 0 {
		return false
	}
	b.lines[i].Qty++
	return true
}

// Decrement removes one unit, dropping the line when it reaches zero.
func (b *Bag) Decrement(item string) bool {
	i := b.index(item)
	if i < 0 {
		return false
	}
	if b.lines[i].Qty <= 1 {
		b.lines = append(b.lines[:i], b.lines[i+1:]...)
		return true
	}
	b.lines[i].Qty--
	return true
}

// Lines returns a copy of the bag lines.
func (b *Bag) Lines() []model.BagLine {
	out := make([]model.BagLine, len(b.lines))
	copy(out, b.lines)
	return out
}

// Total is the sum of all line totals.
func (b *Bag) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (b *Bag) Empty() bool {
	return len(b.lines) == 0
}

func (b *Bag) Clear() {
	b.lines = nil
}

func (b *Bag) index(item string) int {
	for i, l := range b.lines {
		if l.Item == item {
			return i
		}
	}
	return -1
}

package dex

// WalkFunc is called for each value visited by Walk. depth is the number of
// arrays and annotations enclosing v.
type WalkFunc func(depth int, v Value) error

type walkItem struct {
	v     Value
	depth int
}

// Walk visits v and every value nested in it in pre-order, array elements
// and annotation elements in stored order. It uses an explicit stack, so
// nesting depth is bounded only by memory. Walk stops at the first error fn
// returns.
func Walk(v Value, fn WalkFunc) error {
	stack := []walkItem{{v: v}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(it.depth, it.v); err != nil {
			return err
		}

		switch it.v.typ {
		case ValueArray:
			vals := it.v.array.Values()
			for i := len(vals) - 1; i >= 0; i-- {
				stack = append(stack, walkItem{v: vals[i], depth: it.depth + 1})
			}
		case ValueAnnotation:
			if it.v.annotation == nil {
				continue
			}
			elems := it.v.annotation.elements
			for i := len(elems) - 1; i >= 0; i-- {
				stack = append(stack, walkItem{v: elems[i].value, depth: it.depth + 1})
			}
		}
	}
	return nil
}

// Depth returns the largest number of arrays and annotations enclosing any
// value in v, counting v itself when it is one. A scalar has depth 0.
func Depth(v Value) int {
	deepest := 0
	_ = Walk(v, func(depth int, v Value) error {
		d := depth
		if v.typ == ValueArray || v.typ == ValueAnnotation {
			d++
		}
		if d > deepest {
			deepest = d
		}
		return nil
	})
	return deepest
}

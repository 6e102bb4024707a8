package hole

// insert merges the free block [addr, addr+size) into the chain.
//
// It walks from the dummy head keeping cur and the hole after it, and handles
// the first case that applies:
//
//	bridge:    ___CCCFFFFNNNNN___  cur absorbs the block and next
//	forward:   ___CCCFFFF__NNNNN_  cur absorbs the block
//	backward:  ___CCC__FFFFNNNNN_  next is unlinked and folded into the block,
//	                               which is classified again against cur
//	beyond:    ___CCC__NNNNN_FF__  move on to next
//	isolated:  ___CCC__FFFF__NNN_  a new header is written at addr
//
// The dummy head has no end address, so a block is never merged into it.
func (l *List) insert(addr, size uintptr) {
	end := addr + size
	if end < addr {
		violation("block [%#x, +%d) wraps the address space", addr, size)
	}

	cur := dummy
	for {
		touchesCur := false
		if !cur.head {
			curEnd := cur.addr + l.size(cur)
			if curEnd > addr {
				violation("block [%#x, %#x) overlaps hole [%#x, %#x)", addr, end, cur.addr, curEnd)
			}
			touchesCur = curEnd == addr
		}

		nextAddr := l.next(cur)
		if nextAddr == none {
			if touchesCur {
				l.setSize(cur, l.size(cur)+size)
				return
			}
			l.link(cur, addr, size, none)
			return
		}
		next := at(nextAddr)

		switch {
		case touchesCur && end == nextAddr:
			l.setSize(cur, l.size(cur)+size+l.size(next))
			l.setNext(cur, l.next(next))
			return

		case touchesCur:
			if end > nextAddr {
				violation("block [%#x, %#x) overlaps hole at %#x", addr, end, nextAddr)
			}
			l.setSize(cur, l.size(cur)+size)
			return

		case end == nextAddr:
			size += l.size(next)
			end = addr + size
			l.setNext(cur, l.next(next))

		case nextAddr <= addr:
			cur = next

		default:
			if end > nextAddr {
				violation("block [%#x, %#x) overlaps hole at %#x", addr, end, nextAddr)
			}
			l.link(cur, addr, size, nextAddr)
			return
		}
	}
}

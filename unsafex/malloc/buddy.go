package malloc

import (
	"fmt"
	"math/bits"
	"unsafe"
)

const (
	// headerSize is the size of the header in front of each block: [4 bytes magic][4 bytes size].
	headerSize = 8

	// magic marks an allocated block, it's cleared by Free to catch double-free.
	magic uint32 = 0xBADF00D

	// DefaultMinBlockSize is the default minimum block size (8KB).
	DefaultMinBlockSize = 8 * 1024

	// DefaultMaxBlockSize is the default maximum block size (512KB).
	DefaultMaxBlockSize = 512 * 1024
)

// BuddyAllocator manages a fixed []byte arena with the buddy system.
// Blocks are powers of two between minBlockSize and maxBlockSize, and free blocks are merged lazily.
//
// It's not goroutine safe.
type BuddyAllocator struct {
	arena      []byte
	arenaStart unsafe.Pointer

	// freeLists[i] holds offsets of free blocks of size minBlockSize<<i.
	freeLists [][]int

	// needsCoalesce is set by Free, it hints that buddies may be merged.
	needsCoalesce bool

	inuse int // bytes returned by Alloc and not freed yet

	minBlockSize  int
	minBlockShift int
	maxBlockSize  int
	maxBlockOrder int
}

// NewBuddyAllocator creates a buddy allocator with default block sizes (8KB min, 512KB max).
// The arena's size MUST be a multiple of DefaultMaxBlockSize.
func NewBuddyAllocator(arena []byte) (*BuddyAllocator, error) {
	return NewBuddyAllocatorWithBlockSize(arena, DefaultMinBlockSize, DefaultMaxBlockSize)
}

// NewBuddyAllocatorWithBlockSize creates a buddy allocator with custom block sizes.
// Both minBlock and maxBlock must be powers of two, and minBlock <= maxBlock.
// The arena's size MUST be a multiple of maxBlock.
func NewBuddyAllocatorWithBlockSize(arena []byte, minBlock, maxBlock int) (*BuddyAllocator, error) {
	if minBlock <= 0 || minBlock&(minBlock-1) != 0 {
		return nil, fmt.Errorf("minBlockSize must be a power of two, got %d", minBlock)
	}
	if maxBlock <= 0 || maxBlock&(maxBlock-1) != 0 {
		return nil, fmt.Errorf("maxBlockSize must be a power of two, got %d", maxBlock)
	}
	if minBlock > maxBlock {
		return nil, fmt.Errorf("minBlockSize (%d) must be <= maxBlockSize (%d)", minBlock, maxBlock)
	}
	if minBlock <= headerSize {
		return nil, fmt.Errorf("minBlockSize must be > headerSize (%d), got %d", headerSize, minBlock)
	}
	if len(arena) < maxBlock || len(arena)%maxBlock != 0 {
		return nil, fmt.Errorf("arena size must be a multiple of %d bytes, got %d", maxBlock, len(arena))
	}

	minShift := bits.TrailingZeros(uint(minBlock))
	maxOrder := bits.TrailingZeros(uint(maxBlock)) - minShift
	a := &BuddyAllocator{
		arena:         arena,
		arenaStart:    unsafe.Pointer(&arena[0]),
		freeLists:     make([][]int, maxOrder+1),
		minBlockSize:  minBlock,
		minBlockShift: minShift,
		maxBlockSize:  maxBlock,
		maxBlockOrder: maxOrder,
	}
	a.Reset()
	return a, nil
}

// MaxAlloc returns the largest size Alloc can serve.
func (a *BuddyAllocator) MaxAlloc() int {
	return a.maxBlockSize - headerSize
}

// InUse returns the bytes allocated and not freed yet.
func (a *BuddyAllocator) InUse() int {
	return a.inuse
}

// Alloc returns a block with len == size.
// cap of the block is the block size minus the header, the bytes are NOT zeroed.
// It returns nil if size is not in [1, MaxAlloc()] or no block is available.
func (a *BuddyAllocator) Alloc(size int) []byte {
	if size <= 0 || size > a.MaxAlloc() {
		return nil
	}
	order := a.orderOf(size + headerSize)
	offset, ok := a.pop(order)
	if !ok {
		return nil
	}
	ptr := unsafe.Add(a.arenaStart, offset)
	*(*uint32)(ptr) = magic
	*(*uint32)(unsafe.Add(ptr, 4)) = uint32(size)
	a.inuse += size

	blockSize := a.minBlockSize << order
	return unsafe.Slice((*byte)(unsafe.Add(ptr, headerSize)), blockSize-headerSize)[:size]
}

// pop takes a free block of the given order, splitting or merging larger blocks if needed.
func (a *BuddyAllocator) pop(order int) (int, bool) {
	found := -1
	for o := order; o <= a.maxBlockOrder; o++ {
		if len(a.freeLists[o]) > 0 {
			found = o
			break
		}
	}
	if found < 0 {
		if !a.needsCoalesce {
			return 0, false
		}
		if found = a.coalesceUntil(order); found < 0 {
			a.needsCoalesce = false
			return 0, false
		}
	}

	l := a.freeLists[found]
	offset := l[len(l)-1]
	a.freeLists[found] = l[:len(l)-1]

	// keep the left half, the right buddy goes to the lower order
	for found > order {
		found--
		a.freeLists[found] = append(a.freeLists[found], offset+(a.minBlockSize<<found))
	}
	return offset, true
}

// Free returns a block to the allocator.
// The block is located by its data pointer and the header in front of it, so resliced len and cap are fine,
// but it must start at the pointer returned by Alloc.
// It panics on blocks not allocated by a, or freed twice.
func (a *BuddyAllocator) Free(block []byte) {
	if cap(block) == 0 {
		return
	}
	dataPtr := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
	offset := int(dataPtr-uintptr(a.arenaStart)) - headerSize
	if offset < 0 || offset >= len(a.arena) {
		panic("buddy: block not in arena")
	}

	header := unsafe.Add(a.arenaStart, offset)
	if *(*uint32)(header) != magic {
		panic("buddy: double free or invalid block")
	}
	size := int(*(*uint32)(unsafe.Add(header, 4)))
	order := a.orderOf(size + headerSize)
	if offset&(a.minBlockSize<<order-1) != 0 {
		panic("buddy: misaligned block")
	}

	*(*uint32)(header) = 0
	a.inuse -= size
	a.freeLists[order] = append(a.freeLists[order], offset)
	if order < a.maxBlockOrder {
		a.needsCoalesce = true
	}
}

// Available returns the total free bytes, ignoring fragmentation.
func (a *BuddyAllocator) Available() int {
	total := 0
	for order, l := range a.freeLists {
		total += len(l) * ((a.minBlockSize << order) - headerSize)
	}
	return total
}

// coalesceUntil merges free buddies from the lowest order up,
// and returns the order of a free block >= target, or -1 if there's none.
func (a *BuddyAllocator) coalesceUntil(target int) int {
	for order := 0; order < target; order++ {
		l := a.freeLists[order]
		if len(l) < 2 {
			continue
		}
		// buddies are adjacent once sorted, insertion sort is fine for short free lists
		for i := 1; i < len(l); i++ {
			for j := i; j > 0 && l[j] < l[j-1]; j-- {
				l[j], l[j-1] = l[j-1], l[j]
			}
		}
		blockSize := a.minBlockSize << order
		n := 0
		for i := 0; i < len(l); {
			if i+1 < len(l) && l[i+1] == l[i]^blockSize {
				a.freeLists[order+1] = append(a.freeLists[order+1], l[i])
				i += 2
				continue
			}
			l[n] = l[i]
			n++
			i++
		}
		a.freeLists[order] = l[:n]
	}
	for o := target; o <= a.maxBlockOrder; o++ {
		if len(a.freeLists[o]) > 0 {
			return o
		}
	}
	return -1
}

// Reset drops all allocations, the whole arena is free again.
func (a *BuddyAllocator) Reset() {
	for i := range a.freeLists {
		a.freeLists[i] = a.freeLists[i][:0]
	}
	for off := 0; off < len(a.arena); off += a.maxBlockSize {
		a.freeLists[a.maxBlockOrder] = append(a.freeLists[a.maxBlockOrder], off)
	}
	a.needsCoalesce = false
	a.inuse = 0
}

// orderOf returns the smallest order whose block size >= size.
func (a *BuddyAllocator) orderOf(size int) int {
	if size <= a.minBlockSize {
		return 0
	}
	return bits.Len(uint(size-1)) - a.minBlockShift
}

// Package opcache memoizes the disassembly of DWARF stack programs.
// Location lists repeat the same few expressions many times, caching
// avoids decoding them again.
package opcache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/go-delve/dwarfdis/pkg/dwarf/op"
)

// DefaultSize is the number of programs kept when no size is configured.
const DefaultSize = 128

type entry struct {
	insts []op.Instruction
	err   error
}

// Cache is a fixed size cache of disassembled stack programs, safe for
// concurrent use.
type Cache struct {
	lru *lru.Cache
}

// New creates a cache holding at most size programs.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// Disassemble returns the result of op.Disassemble(instructions), from the
// cache if possible. The returned slice is shared and must not be modified.
func (c *Cache) Disassemble(instructions []byte) ([]op.Instruction, error) {
	key := string(instructions)
	if v, ok := c.lru.Get(key); ok {
		e := v.(entry)
		return e.insts, e.err
	}
	// Block operands alias their input, decode a private copy.
	insts, err := op.Disassemble([]byte(key))
	c.lru.Add(key, entry{insts, err})
	return insts, err
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.lru.Purge()
}

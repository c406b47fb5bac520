// machine_bus.go - Machine bus for the boot console machine

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

/*
machine_bus.go - Machine Bus

This module implements the address space the boot console runs in: a 1MB
real-mode style memory with memory-mapped I/O regions layered on top.

Core Features:

    1MB of main memory allocated as a contiguous block.
    Memory-mapped I/O via a page-keyed region table (page mask 0xFFF00, page size 0x100).
    8, 16 and 32-bit little-endian access.
    Mappings are sealed once the machine starts running.

Technical Details:

    Regions are registered with MapIO(start, end, onRead, onWrite).
    A page bitmap lets accesses to pages without I/O skip the region lookup.
    A byte written to a mapped address is passed to the handler and also
    mirrored into main memory, so a plain memory view stays coherent.
*/

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
)

const (
	DEFAULT_MEMORY_SIZE = 1024 * 1024
	PAGE_SIZE           = 0x100
	PAGE_MASK           = 0xFFF00
)

type MachineBus struct {
	/*
		MachineBus is the console machine's address space: a contiguous block of main
		memory and a table of memory-mapped I/O regions.
	*/

	memory  []byte
	mapping map[uint32][]IORegion

	// Indexed by (addr >> 8), true if the page has I/O mappings.
	ioPageBitmap []bool

	sealed atomic.Bool
}

type IORegion struct {
	/*
		IORegion is one memory-mapped device range. onRead and onWrite are
		called for any access that falls inside [start, end].
	*/
	start   uint32
	end     uint32
	onRead  func(addr uint32) uint32
	onWrite func(addr uint32, value uint32)
}

func NewMachineBus() *MachineBus {
	return &MachineBus{
		memory:       make([]byte, DEFAULT_MEMORY_SIZE),
		mapping:      make(map[uint32][]IORegion),
		ioPageBitmap: make([]bool, DEFAULT_MEMORY_SIZE/PAGE_SIZE),
	}
}

// GetMemory returns a direct reference to main memory.
func (bus *MachineBus) GetMemory() []byte {
	return bus.memory
}

// SealMappings prevents further MapIO calls.
func (bus *MachineBus) SealMappings() {
	bus.sealed.CompareAndSwap(false, true)
}

func (bus *MachineBus) MapIO(start, end uint32, onRead func(addr uint32) uint32, onWrite func(addr uint32, value uint32)) {
	if bus.sealed.Load() {
		panic(fmt.Sprintf("MapIO called after the machine started (mapping range $%05X-$%05X)", start, end))
	}
	region := IORegion{
		start:   start,
		end:     end,
		onRead:  onRead,
		onWrite: onWrite,
	}

	firstPage := start & PAGE_MASK
	lastPage := end & PAGE_MASK
	for page := firstPage; page <= lastPage; page += PAGE_SIZE {
		bus.mapping[page] = append(bus.mapping[page], region)
		pageIdx := page >> 8
		if pageIdx < uint32(len(bus.ioPageBitmap)) {
			bus.ioPageBitmap[pageIdx] = true
		}
	}
}

func (bus *MachineBus) findIORegion(addr uint32) *IORegion {
	regions, exists := bus.mapping[addr&PAGE_MASK]
	if !exists {
		return nil
	}
	for i := range regions {
		if addr >= regions[i].start && addr <= regions[i].end {
			return &regions[i]
		}
	}
	return nil
}

func (bus *MachineBus) inBounds(op string, addr uint32, size uint32) bool {
	if addr+size > uint32(len(bus.memory)) || addr+size < addr {
		fmt.Fprintf(os.Stderr, "Warning: %s at out-of-bounds address 0x%08X\n", op, addr)
		return false
	}
	return true
}

func (bus *MachineBus) Write8(addr uint32, value uint8) {
	if !bus.inBounds("Write8", addr, 1) {
		return
	}
	if bus.ioPageBitmap[addr>>8] {
		if region := bus.findIORegion(addr); region != nil && region.onWrite != nil {
			region.onWrite(addr, uint32(value))
		}
	}
	bus.memory[addr] = value
}

func (bus *MachineBus) Read8(addr uint32) uint8 {
	if !bus.inBounds("Read8", addr, 1) {
		return 0
	}
	if bus.ioPageBitmap[addr>>8] {
		if region := bus.findIORegion(addr); region != nil && region.onRead != nil {
			value := uint8(region.onRead(addr))
			bus.memory[addr] = value
			return value
		}
	}
	return bus.memory[addr]
}

func (bus *MachineBus) Write16(addr uint32, value uint16) {
	if !bus.inBounds("Write16", addr, 2) {
		return
	}
	if bus.ioPageBitmap[addr>>8] {
		// Byte-wise so a 16-bit store into the text window updates a whole cell.
		bus.Write8(addr, uint8(value))
		bus.Write8(addr+1, uint8(value>>8))
		return
	}
	binary.LittleEndian.PutUint16(bus.memory[addr:addr+2], value)
}

func (bus *MachineBus) Read16(addr uint32) uint16 {
	if !bus.inBounds("Read16", addr, 2) {
		return 0
	}
	if bus.ioPageBitmap[addr>>8] {
		return uint16(bus.Read8(addr)) | uint16(bus.Read8(addr+1))<<8
	}
	return binary.LittleEndian.Uint16(bus.memory[addr : addr+2])
}

// Write32 delivers the full value to a register handler, or stores it
// little-endian in plain memory.
func (bus *MachineBus) Write32(addr uint32, value uint32) {
	if !bus.inBounds("Write32", addr, 4) {
		return
	}
	if bus.ioPageBitmap[addr>>8] {
		if region := bus.findIORegion(addr); region != nil && region.onWrite != nil {
			region.onWrite(addr, value)
			return
		}
	}
	binary.LittleEndian.PutUint32(bus.memory[addr:addr+4], value)
}

func (bus *MachineBus) Read32(addr uint32) uint32 {
	if !bus.inBounds("Read32", addr, 4) {
		return 0
	}
	if bus.ioPageBitmap[addr>>8] {
		if region := bus.findIORegion(addr); region != nil && region.onRead != nil {
			return region.onRead(addr)
		}
	}
	return binary.LittleEndian.Uint32(bus.memory[addr : addr+4])
}

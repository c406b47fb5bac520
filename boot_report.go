// boot_report.go - Demo kernel entry: print what the boot loader handed over

package main

// Boot information flags (multiboot numbering)
const (
	BOOT_INFO_MEMORY      = 1 << 0
	BOOT_INFO_BOOTDEV     = 1 << 1
	BOOT_INFO_CMDLINE     = 1 << 2
	BOOT_INFO_MEM_MAP     = 1 << 6
	BOOT_INFO_LOADER_NAME = 1 << 9
)

// Memory map entry types
const (
	MEMORY_AVAILABLE        = 1
	MEMORY_RESERVED         = 2
	MEMORY_ACPI_RECLAIMABLE = 3
	MEMORY_NVS              = 4
	MEMORY_BADRAM           = 5
)

// MemoryRegion is one entry of the boot loader memory map.
type MemoryRegion struct {
	Addr uint64
	Len  uint64
	Type uint32
}

// Section is a linker section of the kernel image.
type Section struct {
	Name  string
	Begin uint32
	End   uint32
}

// BootInfo is the already-validated subset of the loader's info block that
// the report prints. Parsing the raw structure happens elsewhere.
type BootInfo struct {
	Flags       uint32
	LoaderName  string
	MemLower    uint32 // KiB
	MemUpper    uint32 // KiB
	BootDevice  uint32
	CommandLine string
	MemoryMap   []MemoryRegion
	Sections    []Section
}

// SampleBootInfo is what a QEMU multiboot load of the demo kernel reports
// on a machine with 20GB of RAM.
func SampleBootInfo() *BootInfo {
	return &BootInfo{
		Flags: BOOT_INFO_MEMORY | BOOT_INFO_BOOTDEV | BOOT_INFO_CMDLINE |
			BOOT_INFO_MEM_MAP | BOOT_INFO_LOADER_NAME,
		LoaderName:  "GRUB 2.06",
		MemLower:    639,
		MemUpper:    3144576,
		BootDevice:  0x80FFFFFF,
		CommandLine: "/boot/demo.elf console=vga",
		MemoryMap: []MemoryRegion{
			{Addr: 0x0, Len: 0x9FC00, Type: MEMORY_AVAILABLE},
			{Addr: 0x9FC00, Len: 0x400, Type: MEMORY_RESERVED},
			{Addr: 0xF0000, Len: 0x10000, Type: MEMORY_RESERVED},
			{Addr: 0x100000, Len: 0xBFEE0000, Type: MEMORY_AVAILABLE},
			{Addr: 0xBFFE0000, Len: 0x20000, Type: MEMORY_ACPI_RECLAIMABLE},
			{Addr: 0xFEFFC000, Len: 0x4000, Type: MEMORY_NVS},
			{Addr: 0xFFFC0000, Len: 0x40000, Type: MEMORY_RESERVED},
			{Addr: 0x100000000, Len: 0x400000000, Type: MEMORY_AVAILABLE},
			{Addr: 0x500000000, Len: 0x1000, Type: MEMORY_BADRAM},
		},
		Sections: []Section{
			{Name: ".text", Begin: 0x100000, End: 0x101A40},
			{Name: ".rodata", Begin: 0x102000, End: 0x1023C0},
			{Name: ".data", Begin: 0x103000, End: 0x103010},
			{Name: ".bss", Begin: 0x104000, End: 0x908000},
		},
	}
}

func memoryTypeLabel(t uint32) string {
	switch t {
	case MEMORY_AVAILABLE:
		return "ram"
	case MEMORY_RESERVED:
		return "reserved"
	case MEMORY_ACPI_RECLAIMABLE:
		return "acpi"
	case MEMORY_NVS:
		return "nv ram"
	case MEMORY_BADRAM:
		return "bad ram"
	default:
		return "?"
	}
}

func printRegion32(out CharSink, begin, end uint32, label string) {
	length := end - begin
	fac := " "

	if length > 10*1024*1024 {
		fac = "m"
		length /= 1024 * 1024
	} else if length > 10*1024 {
		fac = "k"
		length /= 1024
	}
	Printf(out, "  %08x..%08x = %4u%s %s\n",
		NarrowArg(begin), NarrowArg(end), NarrowArg(length), TextArg(fac), TextArg(label))
}

// printRegion64 scales through UDiv64; every divisor is a power of two.
func printRegion64(out CharSink, begin, end uint64, label string) {
	length := end - begin
	fac := " "

	if length > 10*1024*1024*1024 {
		fac = "g"
		length = UDiv64(length, 1024*1024*1024)
	} else if length > 10*1024*1024 {
		fac = "m"
		length = UDiv64(length, 1024*1024)
	} else if length > 10*1024 {
		fac = "k"
		length = UDiv64(length, 1024)
	}
	Printf(out, "  %016lx..%016lx = %4lu%s %s\n",
		WideArg(begin), WideArg(end), WideArg(length), TextArg(fac), TextArg(label))
}

// RunBootReport prints the demo kernel's boot summary to out.
func RunBootReport(out CharSink, info *BootInfo) {
	Printf(out, "demo kernel\n")

	if info.Flags&BOOT_INFO_LOADER_NAME != 0 {
		Printf(out, "loaded by %s\n", TextArg(info.LoaderName))
	}

	if info.Flags&BOOT_INFO_MEMORY != 0 {
		Printf(out, "base memory:\n")
		printRegion32(out, info.MemLower*1024, info.MemUpper*1024, "")
	}

	if info.Flags&BOOT_INFO_BOOTDEV != 0 {
		device := uint8(info.BootDevice >> 24)
		var label string
		switch {
		case device >= 0x80 && device <= 0x8F:
			label = "hd"
		case device <= 0x0F:
			label = "fd"
		default:
			label = "?"
		}
		device &= 0x0F
		Printf(out, "booted from (%s%u)\n", TextArg(label), NarrowArg(uint32(device)))
	}

	if info.Flags&BOOT_INFO_CMDLINE != 0 {
		Printf(out, "command line = \"%s\"\n", TextArg(info.CommandLine))
	}

	if info.Flags&BOOT_INFO_MEM_MAP != 0 {
		Printf(out, "memory map:\n")
		for _, r := range info.MemoryMap {
			printRegion64(out, r.Addr, r.Addr+r.Len, memoryTypeLabel(r.Type))
		}
	}

	Printf(out, "sections:\n")
	for _, s := range info.Sections {
		printRegion32(out, s.Begin, s.End, s.Name)
	}
}

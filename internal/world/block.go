package world

import "fmt"

type BlockType uint8

const (
	BlockAir BlockType = iota
	BlockGrass
	BlockDirt
	BlockStone
	BlockWood
	BlockLeaves
	BlockWater
	BlockPlaced

	blockTypeCount // Sentinel value for table sizing
)

// Solidity is the collision class of a block type
type Solidity uint8

const (
	// SolidityNone blocks never take part in collision
	SolidityNone Solidity = iota
	// SoliditySemi blocks only support a body landing on their top band
	SoliditySemi
	// SolidityFull blocks collide on every side
	SolidityFull
)

type blockInfo struct {
	name     string
	solidity Solidity
}

var blockTable = [blockTypeCount]blockInfo{
	BlockAir:    {"air", SolidityNone},
	BlockGrass:  {"grass", SolidityFull},
	BlockDirt:   {"dirt", SolidityFull},
	BlockStone:  {"stone", SolidityFull},
	BlockWood:   {"wood", SolidityFull},
	BlockLeaves: {"leaves", SoliditySemi},
	BlockWater:  {"water", SolidityNone},
	BlockPlaced: {"placed", SolidityFull},
}

// Valid reports whether t is one of the declared block types
func (t BlockType) Valid() bool {
	return t < blockTypeCount
}

func (t BlockType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("BlockType(%d)", uint8(t))
	}
	return blockTable[t].name
}

// Solidity returns the collision class; unknown types are treated as air
func (t BlockType) Solidity() Solidity {
	if !t.Valid() {
		return SolidityNone
	}
	return blockTable[t].solidity
}

func (t BlockType) IsSolid() bool     { return t.Solidity() == SolidityFull }
func (t BlockType) IsSemiSolid() bool { return t.Solidity() == SoliditySemi }

// ParseBlockType maps a block name back to its type
func ParseBlockType(name string) (BlockType, error) {
	for i, info := range blockTable {
		if info.name == name {
			return BlockType(i), nil
		}
	}
	return BlockAir, fmt.Errorf("unknown block type %q", name)
}

// Cell is a block at an integer world position
type Cell struct {
	X, Y, Z int
	Type    BlockType
}

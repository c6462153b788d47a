package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSolidity(t *testing.T) {
	full := []BlockType{BlockGrass, BlockDirt, BlockStone, BlockWood, BlockPlaced}
	for _, b := range full {
		assert.True(t, b.IsSolid(), "%s should be solid", b)
		assert.False(t, b.IsSemiSolid(), "%s should not be semi-solid", b)
	}

	assert.False(t, BlockLeaves.IsSolid())
	assert.True(t, BlockLeaves.IsSemiSolid())

	for _, b := range []BlockType{BlockAir, BlockWater, BlockType(200)} {
		assert.Equal(t, SolidityNone, b.Solidity(), "%s", b)
	}
}

func TestParseBlockTypeRoundTrip(t *testing.T) {
	for b := BlockAir; b < blockTypeCount; b++ {
		got, err := ParseBlockType(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	_, err := ParseBlockType("bedrock")
	assert.Error(t, err)
	assert.Equal(t, "BlockType(42)", BlockType(42).String())
}

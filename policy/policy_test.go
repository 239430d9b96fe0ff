package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignRoundsUpToAlignment(t *testing.T) {
	aligned, padding := Align(100, 8, 16)
	assert.Equal(t, 104, aligned)
	assert.Equal(t, 4, padding)
}

func TestAlignRaisesToMinPayload(t *testing.T) {
	aligned, padding := Align(1, 8, 16)
	assert.Equal(t, 16, aligned)
	assert.Equal(t, 15, padding)
}

func TestAlignExactMultiple(t *testing.T) {
	aligned, padding := Align(64, 8, 16)
	assert.Equal(t, 64, aligned)
	assert.Equal(t, 0, padding)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "FirstFit", FirstFit.String())
	assert.Equal(t, "NextFit", NextFit.String())
	assert.Equal(t, "BestFit", BestFit.String())
	assert.Equal(t, "Immediate", Immediate.String())
	assert.Equal(t, "Deferred", Deferred.String())
	assert.Equal(t, "Static", Static.String())
	assert.Equal(t, "Dynamic", Dynamic.String())
}

package vkc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

var (
	deviceLocal  = vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	hostVisible  = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	hostCoherent = vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit)
	hostCached   = vk.MemoryPropertyFlags(vk.MemoryPropertyHostCachedBit)
)

func memoryProperties(flags ...vk.MemoryPropertyFlags) vk.PhysicalDeviceMemoryProperties {
	var mp vk.PhysicalDeviceMemoryProperties
	mp.MemoryTypeCount = uint32(len(flags))
	for i, f := range flags {
		mp.MemoryTypes[i] = vk.MemoryType{PropertyFlags: f}
	}
	return mp
}

func TestFindMemoryType(t *testing.T) {
	mp := memoryProperties(
		deviceLocal,
		hostVisible|hostCoherent,
		hostVisible|hostCoherent|hostCached,
		deviceLocal|hostVisible|hostCoherent,
	)

	tests := []struct {
		name     string
		typeBits uint32
		flags    vk.MemoryPropertyFlags
		want     uint32
	}{
		{"device local", 0xffffffff, deviceLocal, 0},
		{"host visible picks lowest", 0xffffffff, hostVisible | hostCoherent, 1},
		{"filter skips type 1", 0b1100, hostVisible | hostCoherent, 2},
		{"superset of flags", 0b1000, hostVisible, 3},
		{"no flags", 0b0100, 0, 2},
		{"cached", 0xffffffff, hostCached, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindMemoryType(mp, tt.typeBits, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindMemoryTypeIsDeterministic(t *testing.T) {
	mp := memoryProperties(hostVisible, hostVisible|hostCoherent, hostVisible|hostCoherent)
	first, err := FindMemoryType(mp, 0b110, hostVisible|hostCoherent)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		got, err := FindMemoryType(mp, 0b110, hostVisible|hostCoherent)
		require.NoError(t, err)
		require.Equal(t, first, got)
	}
	assert.Equal(t, uint32(1), first)
}

func TestFindMemoryTypeNoMatch(t *testing.T) {
	mp := memoryProperties(deviceLocal, hostVisible)

	_, err := FindMemoryType(mp, 0xffffffff, hostVisible|hostCoherent)
	assert.ErrorIs(t, err, ErrNoMemoryType)

	// allowed by flags but not by the filter
	_, err = FindMemoryType(mp, 0b01, hostVisible)
	assert.ErrorIs(t, err, ErrNoMemoryType)

	// types beyond the count are ignored
	mp.MemoryTypes[2] = vk.MemoryType{PropertyFlags: hostVisible | hostCoherent}
	_, err = FindMemoryType(mp, 0xffffffff, hostVisible|hostCoherent)
	assert.ErrorIs(t, err, ErrNoMemoryType)

	_, err = FindMemoryType(vk.PhysicalDeviceMemoryProperties{}, 0xffffffff, 0)
	assert.ErrorIs(t, err, ErrNoMemoryType)
}

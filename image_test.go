package vkc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestTexelSize(t *testing.T) {
	tests := []struct {
		format vk.Format
		size   uint64
	}{
		{vk.FormatR8Unorm, 1},
		{vk.FormatR8g8b8a8Unorm, 4},
		{vk.FormatR32Sfloat, 4},
		{vk.FormatR32g32Sfloat, 8},
		{vk.FormatR32g32b32a32Sfloat, 16},
	}
	for _, tt := range tests {
		s, err := TexelSize(tt.format)
		require.NoError(t, err)
		assert.Equal(t, tt.size, s, "format %d", tt.format)
	}

	_, err := TexelSize(vk.FormatD32Sfloat)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestCreateRejectsBeforeDeviceCalls(t *testing.T) {
	d := &Device{}
	usage := vk.ImageUsageFlags(vk.ImageUsageStorageBit)
	props := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)

	_, err := d.CreateImage(0, 4, 1, vk.FormatR8g8b8a8Unorm, usage, props)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = d.CreateImage(4, 4, 0, vk.FormatR8g8b8a8Unorm, usage, props)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = d.CreateImage(4, 4, 1, vk.FormatD32Sfloat, usage, props)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = d.CreateBuffer(0, vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit), props)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = d.Allocate(0, 0xff, props)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

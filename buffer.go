package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Buffer is a linear block of device memory. Every buffer owns its own allocation, which is
// freed together with the buffer.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Memory   *DeviceMemory
	Size     uint64
}

// CreateBuffer creates a buffer of sizeInBytes with the given usage, allocates memory with the
// requested properties for it and binds the two. Nothing is left behind on failure.
func (d *Device) CreateBuffer(sizeInBytes uint64, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	if sizeInBytes == 0 {
		return nil, errors.Wrap(ErrInvalidSize, "creating buffer")
	}

	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: vk.SharingModeExclusive,
	}

	var buffer vk.Buffer
	err := vkErr(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer), "vkCreateBuffer")
	if err != nil {
		return nil, err
	}

	ret := &Buffer{Device: d, VKBuffer: buffer, Size: sizeInBytes}

	ar := ret.AllocationRequirements()
	mem, err := d.Allocate(ar.Size, ar.MemoryTypeBits, props)
	if err != nil {
		vk.DestroyBuffer(d.VKDevice, buffer, nil)
		return nil, errors.Wrap(err, "allocating buffer memory")
	}

	if err := vkErr(vk.BindBufferMemory(d.VKDevice, buffer, mem.VKDeviceMemory, 0), "vkBindBufferMemory"); err != nil {
		mem.Destroy()
		vk.DestroyBuffer(d.VKDevice, buffer, nil)
		return nil, err
	}
	ret.Memory = mem

	Logger().Debug("created buffer", "size", sizeInBytes, "usage", uint32(usage))

	return ret, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	memoryRequirements.Deref()
	return memoryRequirements
}

func (b *Buffer) AllocationRequirements() AllocationRequirements {
	mr := b.VKMemoryRequirements()
	return AllocationRequirements{
		Size:           uint64(mr.Size),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

// DSInfo describes the whole buffer for a descriptor write
func (b *Buffer) DSInfo() vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: b.VKBuffer,
		Offset: 0,
		Range:  vk.DeviceSize(b.Size),
	}
}

func (b *Buffer) Ref() ResourceRef {
	return BufferRef{Info: b.DSInfo()}
}

func (b *Buffer) ByteSize() uint64 {
	return b.Size
}

// Destroy destroys the buffer and then frees its memory
func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
	if b.Memory != nil {
		b.Memory.Destroy()
		b.Memory = nil
	}
}

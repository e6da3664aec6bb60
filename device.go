package vkc

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() error {
	return vkErr(vk.DeviceWaitIdle(d.VKDevice), "vkDeviceWaitIdle")
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {

	var vkq vk.Queue

	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)

	var queue Queue
	queue.QueueFamily = qf
	queue.Device = d
	queue.VKQueue = vkq

	return &queue
}

// AllocationRequirements is the size and allowed memory types reported by the driver
// for a buffer or an image.
type AllocationRequirements struct {
	Size           uint64
	MemoryTypeBits uint32
}

// Allocate allocates device memory of the given size from the first memory type allowed by
// memoryTypeBits which has all of memoryProperties.
func (d *Device) Allocate(sizeInBytes uint64, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	if sizeInBytes == 0 {
		return nil, errors.Wrap(ErrInvalidSize, "allocating device memory")
	}

	var allocateInfo = vk.MemoryAllocateInfo{}
	allocateInfo.SType = vk.StructureTypeMemoryAllocateInfo
	allocateInfo.AllocationSize = vk.DeviceSize(sizeInBytes)

	var err error

	allocateInfo.MemoryTypeIndex, err = d.PhysicalDevice.FindMemoryType(
		memoryTypeBits,
		memoryProperties)

	if err != nil {
		return nil, err
	}

	var deviceMemory vk.DeviceMemory

	err = vkErr(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory), "vkAllocateMemory")
	if err != nil {
		return nil, err
	}

	Logger().Debug("allocated device memory", "size", sizeInBytes, "memoryType", allocateInfo.MemoryTypeIndex)

	var ret DeviceMemory

	ret.Size = sizeInBytes
	ret.Device = d
	ret.VKDeviceMemory = deviceMemory

	return &ret, nil
}

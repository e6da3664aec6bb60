package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties

	memoryProperties *vk.PhysicalDeviceMemoryProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make([]*QueueFamily, queueFamilyCount)
	for i, queue := range queues {

		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}

		ret[i].VKQueueFamilyProperties.Deref()

	}

	return ret, nil

}

// CreateLogicalDevice opens the device with one queue from each of qfs and the given
// device extensions enabled.
func (p *PhysicalDevice) CreateLogicalDevice(qfs QueueFamilySlice, extensions ...string) (*Device, error) {

	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(qfs))
	for j, q := range qfs {

		queueCreateInfo := vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}

		queueCreateInfos[j] = queueCreateInfo

	}

	// compute work needs no optional features
	deviceFeatures := vk.PhysicalDeviceFeatures{}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(qfs)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if len(extensions) > 0 {
		deviceCreateInfo.EnabledExtensionCount = uint32(len(extensions))
		deviceCreateInfo.PpEnabledExtensionNames = safeStrings(extensions)
	}

	var ldevice vk.Device

	err := vkErr(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice), "vkCreateDevice")
	if err != nil {
		return nil, err
	}

	var device Device
	device.PhysicalDevice = p
	device.VKDevice = ldevice

	return &device, nil
}

// VKPhysicalDeviceMemoryProperties returns the memory heaps and types of the device. The
// result is queried once and reused, memory types don't change for the life of a device.
func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	if p.memoryProperties == nil {
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
		memoryProperties.Deref()
		for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
			memoryProperties.MemoryTypes[i].Deref()
		}
		for i := uint32(0); i < memoryProperties.MemoryHeapCount; i++ {
			memoryProperties.MemoryHeaps[i].Deref()
		}
		p.memoryProperties = &memoryProperties
	}
	return *p.memoryProperties
}

func (p *PhysicalDevice) MemoryTypes() []vk.MemoryType {
	mp := p.VKPhysicalDeviceMemoryProperties()
	return append([]vk.MemoryType(nil), mp.MemoryTypes[:mp.MemoryTypeCount]...)
}

func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	return FindMemoryType(p.VKPhysicalDeviceMemoryProperties(), memoryTypeBits, properties)
}

// FindMemoryType returns the lowest memory type index which is allowed by memoryTypeBits
// (bit i set allows type i) and whose property flags include every flag in properties.
//
// See the documentation of VkPhysicalDeviceMemoryProperties for a detailed description.
func FindMemoryType(mp vk.PhysicalDeviceMemoryProperties, memoryTypeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	count := mp.MemoryTypeCount
	if count > uint32(len(mp.MemoryTypes)) {
		count = uint32(len(mp.MemoryTypes))
	}
	for i := uint32(0); i < count; i++ {
		mt := mp.MemoryTypes[i]
		if memoryTypeBits&(1<<i) != 0 && mt.PropertyFlags&properties == properties {
			return i, nil
		}
	}
	return 0, errors.Wrapf(ErrNoMemoryType, "type bits %#x, properties %#x", memoryTypeBits, uint32(properties))
}

func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &features)
	features.Deref()
	return features
}

// SupportedExtensions returns the names of the device extensions the driver offers
func (p *PhysicalDevice) SupportedExtensions() ([]string, error) {
	var count uint32
	err := vkErr(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil), "vkEnumerateDeviceExtensionProperties")
	if err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	err = vkErr(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, props), "vkEnumerateDeviceExtensionProperties")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(props))
	for _, ext := range props {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

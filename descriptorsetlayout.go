package vkc

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the layout of a descriptorset. Bindings are numbered in
// the order they are declared, starting at 0, and are visible to the compute stage only.
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding

	poolSizes []vk.DescriptorPoolSize
}

func (d *Device) NewDescriptorSetLayout() *DescriptorSetLayout {
	return &DescriptorSetLayout{Device: d}
}

// Declare adds a binding of the given type at the next index and returns that index.
func (d *DescriptorSetLayout) Declare(dtype vk.DescriptorType) uint32 {
	index := uint32(len(d.VKDescriptorSetLayoutBindings))
	d.VKDescriptorSetLayoutBindings = append(d.VKDescriptorSetLayoutBindings, vk.DescriptorSetLayoutBinding{
		Binding:         index,
		DescriptorType:  dtype,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageComputeBit),
	})

	for i := range d.poolSizes {
		if d.poolSizes[i].Type == dtype {
			d.poolSizes[i].DescriptorCount++
			return index
		}
	}
	d.poolSizes = append(d.poolSizes, vk.DescriptorPoolSize{Type: dtype, DescriptorCount: 1})
	return index
}

// PoolSizes returns the number of declared bindings per descriptor type, in the order each
// type was first declared.
func (d *DescriptorSetLayout) PoolSizes() []vk.DescriptorPoolSize {
	return append([]vk.DescriptorPoolSize(nil), d.poolSizes...)
}

// Destroy destroys this descriptor set layout
func (d *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
}

// CreateDescriptorSetLayout creates this descriptor set layout
func (d *Device) CreateDescriptorSetLayout(layout *DescriptorSetLayout) (*DescriptorSetLayout, error) {
	var descriptorSetLayoutCreateInfo = &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layout.VKDescriptorSetLayoutBindings)),
		PBindings:    layout.VKDescriptorSetLayoutBindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	err := vkErr(vk.CreateDescriptorSetLayout(d.VKDevice, descriptorSetLayoutCreateInfo, nil, &descriptorSetLayout), "vkCreateDescriptorSetLayout")
	if err != nil {
		return nil, err
	}

	layout.Device = d
	layout.VKDescriptorSetLayout = descriptorSetLayout

	return layout, nil
}

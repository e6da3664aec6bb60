package vkc

import (
	vk "github.com/vulkan-go/vulkan"
)

// ResourceRef is a resolved reference to a resource which can be written into a descriptor
// binding. It is either a BufferRef or an ImageRef.
type ResourceRef interface {
	resourceRef()
}

// BufferRef references a range of a buffer, for uniform and storage buffer bindings.
type BufferRef struct {
	Info vk.DescriptorBufferInfo
}

// ImageRef references an image view in a layout, for sampled, storage and combined image
// sampler bindings.
type ImageRef struct {
	Info vk.DescriptorImageInfo
}

func (BufferRef) resourceRef() {}
func (ImageRef) resourceRef() {}

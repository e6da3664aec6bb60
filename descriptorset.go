package vkc

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet is a binding of resources to a descriptor, per a specific DescriptorSetLayout
type DescriptorSet struct {
	Device          *Device
	DescriptorPool  *DescriptorPool
	VKDescriptorSet vk.DescriptorSet
}

// Write validates refs against the bindings and writes all of them to the set in a single
// update. Nothing is written if any reference is rejected.
func (ds *DescriptorSet) Write(bindings []vk.DescriptorSetLayoutBinding, refs []ResourceRef) error {
	writes, err := descriptorWrites(ds.VKDescriptorSet, bindings, refs)
	if err != nil {
		return err
	}
	vk.UpdateDescriptorSets(ds.Device.VKDevice, uint32(len(writes)), writes, 0, nil)
	return nil
}

func isBufferDescriptor(t vk.DescriptorType) bool {
	return t == vk.DescriptorTypeUniformBuffer || t == vk.DescriptorTypeStorageBuffer
}

func isImageDescriptor(t vk.DescriptorType) bool {
	return t == vk.DescriptorTypeCombinedImageSampler || t == vk.DescriptorTypeSampledImage || t == vk.DescriptorTypeStorageImage
}

// descriptorWrites builds one write per binding, pairing bindings and refs by position.
func descriptorWrites(set vk.DescriptorSet, bindings []vk.DescriptorSetLayoutBinding, refs []ResourceRef) ([]vk.WriteDescriptorSet, error) {
	if len(refs) != len(bindings) {
		return nil, errors.Wrapf(ErrBindingCount, "%d resources for %d bindings", len(refs), len(bindings))
	}

	writes := make([]vk.WriteDescriptorSet, len(bindings))
	for i, b := range bindings {
		w := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      b.Binding,
			DstArrayElement: 0,
			DescriptorCount: 1,
			DescriptorType:  b.DescriptorType,
		}

		switch {
		case isBufferDescriptor(b.DescriptorType):
			ref, ok := refs[i].(BufferRef)
			if !ok {
				return nil, errors.Wrapf(ErrBindingType, "binding %d expects a buffer, got %s", b.Binding, refKind(refs[i]))
			}
			w.PBufferInfo = []vk.DescriptorBufferInfo{ref.Info}
		case isImageDescriptor(b.DescriptorType):
			ref, ok := refs[i].(ImageRef)
			if !ok {
				return nil, errors.Wrapf(ErrBindingType, "binding %d expects an image, got %s", b.Binding, refKind(refs[i]))
			}
			w.PImageInfo = []vk.DescriptorImageInfo{ref.Info}
		default:
			return nil, errors.Wrapf(ErrUnsupportedDescriptorType, "binding %d has type %d", b.Binding, b.DescriptorType)
		}

		writes[i] = w
	}
	return writes, nil
}

func refKind(r ResourceRef) string {
	switch r.(type) {
	case BufferRef:
		return "buffer"
	case ImageRef:
		return "image"
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%T", r)
}

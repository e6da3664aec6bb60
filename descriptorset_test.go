package vkc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

var (
	bufferTypes = []vk.DescriptorType{
		vk.DescriptorTypeUniformBuffer,
		vk.DescriptorTypeStorageBuffer,
	}
	imageTypes = []vk.DescriptorType{
		vk.DescriptorTypeCombinedImageSampler,
		vk.DescriptorTypeSampledImage,
		vk.DescriptorTypeStorageImage,
	}
)

var noSet vk.DescriptorSet

func layoutOf(types ...vk.DescriptorType) *DescriptorSetLayout {
	l := &DescriptorSetLayout{}
	for _, t := range types {
		l.Declare(t)
	}
	return l
}

func TestDeclareNumbersBindings(t *testing.T) {
	l := &DescriptorSetLayout{}
	assert.Equal(t, uint32(0), l.Declare(vk.DescriptorTypeStorageBuffer))
	assert.Equal(t, uint32(1), l.Declare(vk.DescriptorTypeUniformBuffer))
	assert.Equal(t, uint32(2), l.Declare(vk.DescriptorTypeStorageBuffer))

	for i, b := range l.VKDescriptorSetLayoutBindings {
		assert.Equal(t, uint32(i), b.Binding)
		assert.Equal(t, uint32(1), b.DescriptorCount)
		assert.Equal(t, vk.ShaderStageFlags(vk.ShaderStageComputeBit), b.StageFlags)
	}
}

func TestPoolSizes(t *testing.T) {
	l := layoutOf(
		vk.DescriptorTypeStorageImage,
		vk.DescriptorTypeStorageBuffer,
		vk.DescriptorTypeStorageImage,
		vk.DescriptorTypeUniformBuffer,
		vk.DescriptorTypeStorageBuffer,
		vk.DescriptorTypeStorageBuffer,
	)

	assert.Equal(t, []vk.DescriptorPoolSize{
		{Type: vk.DescriptorTypeStorageImage, DescriptorCount: 2},
		{Type: vk.DescriptorTypeStorageBuffer, DescriptorCount: 3},
		{Type: vk.DescriptorTypeUniformBuffer, DescriptorCount: 1},
	}, l.PoolSizes())

	assert.Empty(t, (&DescriptorSetLayout{}).PoolSizes())
}

func TestDescriptorWritesCount(t *testing.T) {
	l := layoutOf(vk.DescriptorTypeStorageBuffer, vk.DescriptorTypeUniformBuffer)

	_, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{BufferRef{}})
	assert.ErrorIs(t, err, ErrBindingCount)

	_, err = descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{BufferRef{}, BufferRef{}, BufferRef{}})
	assert.ErrorIs(t, err, ErrBindingCount)

	_, err = descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, nil)
	assert.ErrorIs(t, err, ErrBindingCount)

	writes, err := descriptorWrites(noSet, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, writes)
}

func TestDescriptorWritesTypeTag(t *testing.T) {
	for _, bt := range bufferTypes {
		l := layoutOf(bt)
		_, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{ImageRef{}})
		assert.ErrorIs(t, err, ErrBindingType, "type %d", bt)

		writes, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{BufferRef{}})
		require.NoError(t, err, "type %d", bt)
		require.Len(t, writes, 1)
		assert.Len(t, writes[0].PBufferInfo, 1)
		assert.Empty(t, writes[0].PImageInfo)
	}
	for _, it := range imageTypes {
		l := layoutOf(it)
		_, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{BufferRef{}})
		assert.ErrorIs(t, err, ErrBindingType, "type %d", it)

		writes, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{ImageRef{}})
		require.NoError(t, err, "type %d", it)
		require.Len(t, writes, 1)
		assert.Len(t, writes[0].PImageInfo, 1)
		assert.Empty(t, writes[0].PBufferInfo)
	}
}

func TestDescriptorWritesNilReference(t *testing.T) {
	l := layoutOf(vk.DescriptorTypeStorageBuffer)
	_, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{nil})
	assert.ErrorIs(t, err, ErrBindingType)
}

func TestDescriptorWritesUnsupportedType(t *testing.T) {
	for _, dt := range []vk.DescriptorType{
		vk.DescriptorTypeSampler,
		vk.DescriptorTypeUniformTexelBuffer,
		vk.DescriptorTypeStorageTexelBuffer,
		vk.DescriptorTypeUniformBufferDynamic,
		vk.DescriptorTypeInputAttachment,
	} {
		l := layoutOf(dt)
		_, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{BufferRef{}})
		assert.ErrorIs(t, err, ErrUnsupportedDescriptorType, "type %d", dt)
	}
}

func TestDescriptorWritesContent(t *testing.T) {
	l := layoutOf(vk.DescriptorTypeStorageBuffer, vk.DescriptorTypeUniformBuffer, vk.DescriptorTypeStorageImage)

	storage := BufferRef{Info: vk.DescriptorBufferInfo{Offset: 0, Range: 20}}
	uniform := BufferRef{Info: vk.DescriptorBufferInfo{Offset: 0, Range: 4}}
	image := ImageRef{Info: vk.DescriptorImageInfo{ImageLayout: vk.ImageLayoutGeneral}}

	writes, err := descriptorWrites(noSet, l.VKDescriptorSetLayoutBindings, []ResourceRef{storage, uniform, image})
	require.NoError(t, err)
	require.Len(t, writes, 3)

	for i, w := range writes {
		assert.Equal(t, vk.StructureTypeWriteDescriptorSet, w.SType)
		assert.Equal(t, uint32(i), w.DstBinding)
		assert.Equal(t, uint32(1), w.DescriptorCount)
		assert.Equal(t, l.VKDescriptorSetLayoutBindings[i].DescriptorType, w.DescriptorType)
	}
	assert.Equal(t, vk.DeviceSize(20), writes[0].PBufferInfo[0].Range)
	assert.Equal(t, vk.DeviceSize(4), writes[1].PBufferInfo[0].Range)
	assert.Equal(t, vk.ImageLayoutGeneral, writes[2].PImageInfo[0].ImageLayout)
}

func TestBuilderLifecycle(t *testing.T) {
	b := &DescriptorSetBuilder{layout: &DescriptorSetLayout{}}

	idx, err := b.DeclareBinding(vk.DescriptorTypeStorageBuffer)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), idx)
	idx, err = b.DeclareBinding(vk.DescriptorTypeUniformBuffer)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), idx)

	assert.ErrorIs(t, b.Fill(), ErrNotBuilt)
	assert.Nil(t, b.Set())

	buf := &Buffer{Size: 8}
	b.BindReference(buf.Ref())
	b.BindReference(BufferRef{})
	assert.Equal(t, []ResourceRef{BufferRef{Info: vk.DescriptorBufferInfo{Range: 8}}, BufferRef{}}, b.Refs())

	// as if Build had succeeded
	b.set = &DescriptorSet{}

	_, err = b.DeclareBinding(vk.DescriptorTypeStorageBuffer)
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
	assert.ErrorIs(t, b.Build(), ErrAlreadyBuilt)
	assert.Len(t, b.Layout().VKDescriptorSetLayoutBindings, 2)
}

func TestResourceRefs(t *testing.T) {
	buf := &Buffer{Size: 32}
	ref, ok := buf.Ref().(BufferRef)
	require.True(t, ok)
	assert.Equal(t, vk.DeviceSize(0), ref.Info.Offset)
	assert.Equal(t, vk.DeviceSize(32), ref.Info.Range)

	img := &Image{Layout: vk.ImageLayoutGeneral}
	iref, ok := img.Ref().(ImageRef)
	require.True(t, ok)
	assert.Equal(t, vk.ImageLayoutGeneral, iref.Info.ImageLayout)
}

func TestBoundImageUsage(t *testing.T) {
	transfer := vk.ImageUsageFlags(vk.ImageUsageTransferDstBit | vk.ImageUsageTransferSrcBit)

	u := boundImageUsage(vk.ImageUsageFlags(vk.ImageUsageStorageBit))
	assert.Equal(t, vk.ImageUsageFlags(vk.ImageUsageStorageBit)|transfer, u)
	assert.Equal(t, transfer, boundImageUsage(transfer))
}

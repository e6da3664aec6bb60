package vkc

import (
	vk "github.com/vulkan-go/vulkan"
)

// Recorder is the set of commands this package records. *CommandBuffer implements it by
// calling straight into vulkan.
type Recorder interface {
	CmdPipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, memoryBarriers []vk.MemoryBarrier, imageBarriers []vk.ImageMemoryBarrier)
	CmdBindComputePipeline(p *ComputePipeline)
	CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet)
	CmdDispatch(x, y, z uint32)
	CmdCopyBuffer(src, dst *Buffer, size uint64)
	CmdCopyBufferToImage(src *Buffer, dst *Image)
	CmdCopyImageToBuffer(src *Image, dst *Buffer)
}

// CommandBuffers describe a sequence of commands that will be executed
// upon being sent to a device queue. Not all available vulkan commands
// are wrapped by this package. It is expected that the calling application
// must call the native vulkan command APIs.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

var _ Recorder = (*CommandBuffer)(nil)

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = 0
	return vkErr(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "vkBeginCommandBuffer")
}

// BeginOneTime begins capturing work for this command buffer, with the stipulation that it will only be used once (instead of put back in the pool of command buffers)
func (c *CommandBuffer) BeginOneTime() error {
	var beginInfo = vk.CommandBufferBeginInfo{}
	beginInfo.SType = vk.StructureTypeCommandBufferBeginInfo
	beginInfo.Flags = vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit)
	return vkErr(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "vkBeginCommandBuffer")
}

func (c *CommandBuffer) CmdPipelineBarrier(srcStage, dstStage vk.PipelineStageFlags, memoryBarriers []vk.MemoryBarrier, imageBarriers []vk.ImageMemoryBarrier) {
	vk.CmdPipelineBarrier(c.VKCommandBuffer, srcStage, dstStage, vk.DependencyFlags(0),
		uint32(len(memoryBarriers)), memoryBarriers,
		0, nil,
		uint32(len(imageBarriers)), imageBarriers)
}

func (c *CommandBuffer) CmdBindComputePipeline(p *ComputePipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointCompute, p.VKPipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {

	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}

	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(descriptorSets)), sets, 0, nil)

}

func (c *CommandBuffer) CmdDispatch(x, y, z uint32) {
	vk.CmdDispatch(c.VKCommandBuffer, x, y, z)
}

func (c *CommandBuffer) CmdCopyBuffer(src, dst *Buffer, size uint64) {
	vk.CmdCopyBuffer(c.VKCommandBuffer, src.VKBuffer, dst.VKBuffer, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}})
}

// CmdCopyBufferToImage copies the whole image from src, dst must be in the transfer destination layout
func (c *CommandBuffer) CmdCopyBufferToImage(src *Buffer, dst *Image) {
	vk.CmdCopyBufferToImage(c.VKCommandBuffer, src.VKBuffer, dst.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{dst.copyRegion()})
}

// CmdCopyImageToBuffer copies the whole image into dst, src must be in the transfer source layout
func (c *CommandBuffer) CmdCopyImageToBuffer(src *Image, dst *Buffer) {
	vk.CmdCopyImageToBuffer(c.VKCommandBuffer, src.VKImage, vk.ImageLayoutTransferSrcOptimal, dst.VKBuffer, 1, []vk.BufferImageCopy{src.copyRegion()})
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vkErr(vk.EndCommandBuffer(c.VKCommandBuffer), "vkEndCommandBuffer")
}

package vkc

import (
	vk "github.com/vulkan-go/vulkan"
)

// fakeRecorder remembers the commands recorded into it
type fakeRecorder struct {
	ops            []string
	memoryBarriers []vk.MemoryBarrier
	imageBarriers  []vk.ImageMemoryBarrier
	stages         [][2]vk.PipelineStageFlags
	pipelines      []*ComputePipeline
	sets           []*DescriptorSet
	dispatches     []Extent
}

func (f *fakeRecorder) CmdPipelineBarrier(src, dst vk.PipelineStageFlags, memoryBarriers []vk.MemoryBarrier, imageBarriers []vk.ImageMemoryBarrier) {
	f.ops = append(f.ops, "barrier")
	f.stages = append(f.stages, [2]vk.PipelineStageFlags{src, dst})
	f.memoryBarriers = append(f.memoryBarriers, memoryBarriers...)
	f.imageBarriers = append(f.imageBarriers, imageBarriers...)
}

func (f *fakeRecorder) CmdBindComputePipeline(p *ComputePipeline) {
	f.ops = append(f.ops, "bindPipeline")
	f.pipelines = append(f.pipelines, p)
}

func (f *fakeRecorder) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, sets ...*DescriptorSet) {
	f.ops = append(f.ops, "bindSets")
	f.sets = append(f.sets, sets...)
}

func (f *fakeRecorder) CmdDispatch(x, y, z uint32) {
	f.ops = append(f.ops, "dispatch")
	f.dispatches = append(f.dispatches, Extent{x, y, z})
}

func (f *fakeRecorder) CmdCopyBuffer(src, dst *Buffer, size uint64) {
	f.ops = append(f.ops, "copyBuffer")
}

func (f *fakeRecorder) CmdCopyBufferToImage(src *Buffer, dst *Image) {
	f.ops = append(f.ops, "copyBufferToImage")
}

func (f *fakeRecorder) CmdCopyImageToBuffer(src *Image, dst *Buffer) {
	f.ops = append(f.ops, "copyImageToBuffer")
}

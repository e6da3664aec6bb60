/*
Package vkc implements a small compute layer atop the Vulkan API for go. Vulkan gives
applications direct control over where data lives, how shaders see it and when work runs,
but nearly every one of those decisions has to be spelled out by hand, and getting the
order wrong tends to produce undefined behavior on the GPU rather than a helpful error.

This package takes care of the parts of a compute program that are tedious and easy to
get subtly wrong: allocating buffers and images, moving bytes to and from them, tracking
image layouts, describing how shaders bind to resources and running a sequence of compute
stages with the right barriers between them. Native vulkan handles are exposed on all the
objects with a 'VK' prefix so applications aren't limited by what this package provides.

Overview of a compute program

	1. Create a Context, which owns the logical device, one compute queue and a command pool
	2. Declare descriptor bindings and build the descriptor set
	3. Attach resources to the bindings, either by value (the package creates and uploads
	   the buffer or image) or by reference (the application created it already)
	4. Fill the descriptor set, which validates that every binding got a resource of the
	   right kind and writes them all in one update
	5. Build a pipeline group: one compute pipeline per shader, all sharing the descriptor
	   set layout, each with its own dispatch extent
	6. Execute the group, which binds the set, runs every stage in order with a memory
	   barrier after each dispatch and waits for the queue to go idle
	7. Download results from the buffers or images

Native Vulkan terms
	Instance		the vulkan runtime instance
	PhysicalDevice		the physical hardware device
	Device			a logical device, the target of most of the vulkan apis
	Queue			a queue which work (command buffers) may be submitted to
	DeviceMemory		an allocation of memory on the host or device
	Buffer			linear data bound to device memory
	Image			texel data bound to device memory, with a layout tracked by the GPU
	ImageView		a way of describing how an image is accessed by shaders
	DescriptorSet		a mapping of resources for use by shaders
	DescriptorSetLayout	a description of what resources are in the descriptor set
	DescriptorPool		the arena descriptor sets are allocated from
	Pipeline		a compiled compute shader bound to a pipeline layout

Synchronization

Everything in this package runs on a single compute queue from a single goroutine.
Transfers and executions block until the queue is idle before they return, so the
results of an Execute can be downloaded right away. Nothing here is safe for concurrent
use without external locking, the command pool in particular.

Ownership

Every object with a Destroy method is owned by whoever created it. Scope collects
objects as they are created and destroys them in reverse order, which is the order
Vulkan expects them to go away in:

	scope := &vkc.Scope{}
	defer scope.Release()

	ctx, err := vkc.NewContext(vkc.Options{Name: "example"})
	...
	scope.Add(ctx)
*/
package vkc

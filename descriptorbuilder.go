package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetBuilder declares the bindings of a single descriptor set, builds the layout,
// pool and set for them and fills the set with resources in declaration order.
//
//	b := ctx.NewDescriptorSetBuilder()
//	b.DeclareBinding(vk.DescriptorTypeStorageBuffer)
//	b.Build()
//	buf, _ := b.BindBufferData(data, usage, props)
//	b.Fill()
type DescriptorSetBuilder struct {
	ctx    *Context
	layout *DescriptorSetLayout
	pool   *DescriptorPool
	set    *DescriptorSet
	refs   []ResourceRef
}

func (c *Context) NewDescriptorSetBuilder() *DescriptorSetBuilder {
	return &DescriptorSetBuilder{
		ctx:    c,
		layout: c.Device.NewDescriptorSetLayout(),
	}
}

// DeclareBinding adds a binding of type t and returns its index. Bindings can only be
// declared before Build.
func (b *DescriptorSetBuilder) DeclareBinding(t vk.DescriptorType) (uint32, error) {
	if b.set != nil {
		return 0, ErrAlreadyBuilt
	}
	return b.layout.Declare(t), nil
}

// Build creates the layout, a pool sized for exactly one set of the declared bindings, and
// allocates the set. Partially created objects are destroyed on failure.
func (b *DescriptorSetBuilder) Build() error {
	if b.set != nil {
		return ErrAlreadyBuilt
	}
	d := b.ctx.Device
	scope := &Scope{}

	layout, err := d.CreateDescriptorSetLayout(b.layout)
	if err != nil {
		return errors.Wrap(err, "creating descriptor set layout")
	}
	scope.Add(layout)

	pool := d.NewDescriptorPool()
	for _, ps := range layout.PoolSizes() {
		pool.AddPoolSize(ps.Type, int(ps.DescriptorCount))
	}
	pool, err = d.CreateDescriptorPool(pool, 1)
	if err != nil {
		scope.Release()
		return errors.Wrap(err, "creating descriptor pool")
	}
	scope.Add(pool)

	set, err := pool.Allocate(layout)
	if err != nil {
		scope.Release()
		return errors.Wrap(err, "allocating descriptor set")
	}
	scope.Forget()

	b.pool = pool
	b.set = set

	Logger().Debug("built descriptor set", "bindings", len(layout.VKDescriptorSetLayoutBindings))
	return nil
}

// BindBufferData creates a buffer sized for data, uploads data into it and appends a
// reference to it. The caller owns the returned buffer.
func (b *DescriptorSetBuilder) BindBufferData(data []byte, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	return b.BindBuffer(uint64(len(data)), data, usage, props)
}

// BindBuffer is BindBufferData with an explicit size, which may be larger than data. A nil
// data leaves the contents undefined.
func (b *DescriptorSetBuilder) BindBuffer(size uint64, data []byte, usage vk.BufferUsageFlags, props vk.MemoryPropertyFlags) (*Buffer, error) {
	if data != nil {
		usage |= vk.BufferUsageFlags(vk.BufferUsageTransferDstBit)
	}
	buf, err := b.ctx.Device.CreateBuffer(size, usage, props)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := b.ctx.Upload(buf, data); err != nil {
			buf.Destroy()
			return nil, errors.Wrap(err, "uploading buffer data")
		}
	}
	b.refs = append(b.refs, buf.Ref())
	return buf, nil
}

// BindImageData creates an image, uploads data into it and appends a reference to it in the
// general layout. data must cover the whole image, a nil data uploads zeros. The image can
// always be downloaded, transfer usage is added to usage. The caller owns the returned image.
func (b *DescriptorSetBuilder) BindImageData(data []byte, width, height, depth uint32, format vk.Format, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (*Image, error) {
	img, err := b.ctx.Device.CreateImage(width, height, depth, format, boundImageUsage(usage), props)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = make([]byte, img.Size)
	}
	if err := b.ctx.Upload(img, data); err != nil {
		img.Destroy()
		return nil, errors.Wrap(err, "uploading image data")
	}
	b.refs = append(b.refs, img.Ref())
	return img, nil
}

func boundImageUsage(usage vk.ImageUsageFlags) vk.ImageUsageFlags {
	return usage | vk.ImageUsageFlags(vk.ImageUsageTransferDstBit|vk.ImageUsageTransferSrcBit)
}

// BindReference appends a reference to a resource the caller created.
func (b *DescriptorSetBuilder) BindReference(ref ResourceRef) {
	b.refs = append(b.refs, ref)
}

// Fill checks the attached references against the declared bindings and writes them all to
// the set.
func (b *DescriptorSetBuilder) Fill() error {
	if b.set == nil {
		return ErrNotBuilt
	}
	return b.set.Write(b.layout.VKDescriptorSetLayoutBindings, b.refs)
}

func (b *DescriptorSetBuilder) Layout() *DescriptorSetLayout {
	return b.layout
}

// Set returns the descriptor set, nil before Build
func (b *DescriptorSetBuilder) Set() *DescriptorSet {
	return b.set
}

// Refs returns the attached references in attachment order
func (b *DescriptorSetBuilder) Refs() []ResourceRef {
	return append([]ResourceRef(nil), b.refs...)
}

// Destroy destroys the pool, which frees the set, and then the layout. Bound resources are
// not touched.
func (b *DescriptorSetBuilder) Destroy() {
	if b.set == nil {
		return
	}
	b.pool.Destroy()
	b.layout.Destroy()
	b.pool = nil
	b.set = nil
}

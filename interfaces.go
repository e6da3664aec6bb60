package vkc

// Destroyer is implemented by every object which owns vulkan handles.
type Destroyer interface {
	Destroy()
}

// BufferObject is a source of bytes to upload.
type BufferObject interface {
	Bytes() []byte
}

// Resource is a device resource which can be the target of a transfer and be bound to a
// descriptor. It is implemented by *Buffer and *Image.
type Resource interface {
	Destroyer
	// ByteSize is the number of bytes a transfer of the whole resource moves
	ByteSize() uint64
	// Ref returns a descriptor reference to the resource
	Ref() ResourceRef
}

package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

var (
	// ErrNoMemoryType is returned when no memory type satisfies both the type filter
	// and the requested property flags.
	ErrNoMemoryType = errors.New("no matching memory type found")

	// ErrUnsupportedTransition is returned for image layout pairs outside the transition table.
	ErrUnsupportedTransition = errors.New("unsupported layout transition")

	// ErrBindingCount is returned by Fill when the number of attached resources differs
	// from the number of declared bindings.
	ErrBindingCount = errors.New("incorrect count of resources for the declared bindings")

	// ErrBindingType is returned by Fill when a buffer is attached to an image binding or
	// the other way round.
	ErrBindingType = errors.New("resource kind does not match descriptor type")

	// ErrUnsupportedDescriptorType is returned by Fill for descriptor types this package cannot write.
	ErrUnsupportedDescriptorType = errors.New("unsupported descriptor type")

	ErrAlreadyBuilt = errors.New("descriptor set has already been built")
	ErrNotBuilt     = errors.New("descriptor set has not been built")

	// ErrStageCount is returned when the number of shaders and dispatch extents differ.
	ErrStageCount = errors.New("shader and dispatch extent counts differ")

	ErrInvalidSize         = errors.New("invalid size")
	ErrInvalidShader       = errors.New("invalid SPIR-V shader")
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrUnsupportedResource = errors.New("unsupported resource type")
	ErrNoDevice            = errors.New("no suitable physical device")
	ErrInvalidConfig       = errors.New("invalid job configuration")

	// ErrQueueWait is returned when commands were submitted but waiting for them failed.
	// Their effects, layout transitions included, may already have happened.
	ErrQueueWait = errors.New("waiting for submitted commands")

	ErrMissingLayer     = errors.New("layer not available")
	ErrMissingExtension = errors.New("extension not available")
)

// vkErr converts a vulkan result into an error annotated with the failing call.
func vkErr(res vk.Result, call string) error {
	if err := vk.Error(res); err != nil {
		return errors.Wrap(err, call)
	}
	return nil
}

package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Image is a 2D or 3D image with its own memory allocation and a color view over the
// whole resource. Layout is the layout the image is known to be in; it is only changed by
// TransitionImageLayout.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Memory   *DeviceMemory
	View     *ImageView
	Extent   vk.Extent3D
	Layout   vk.ImageLayout
	Size     uint64
}

// texel sizes of the formats which can be uploaded and downloaded
var texelSizes = map[vk.Format]uint64{
	vk.FormatR8Unorm:            1,
	vk.FormatR8g8b8a8Unorm:      4,
	vk.FormatR8g8b8a8Uint:       4,
	vk.FormatR8g8b8a8Srgb:       4,
	vk.FormatR32Sfloat:          4,
	vk.FormatR32Uint:            4,
	vk.FormatR32g32Sfloat:       8,
	vk.FormatR16g16b16a16Sfloat: 8,
	vk.FormatR32g32b32a32Sfloat: 16,
}

// TexelSize returns the number of bytes of one texel of format.
func TexelSize(format vk.Format) (uint64, error) {
	s, ok := texelSizes[format]
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedFormat, "format %d", format)
	}
	return s, nil
}

func (i *Image) GetMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	memRequirements.Deref()
	return memRequirements
}

// CreateImage creates an optimally tiled image of width x height x depth texels, backs it with
// memory having props and creates a color view over it. A depth of 1 creates a 2D image,
// anything larger a 3D image. The image starts in the undefined layout.
func (d *Device) CreateImage(width, height, depth uint32, format vk.Format, usage vk.ImageUsageFlags, props vk.MemoryPropertyFlags) (*Image, error) {
	if width == 0 || height == 0 || depth == 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "creating %dx%dx%d image", width, height, depth)
	}
	texel, err := TexelSize(format)
	if err != nil {
		return nil, err
	}

	imageType := vk.ImageType2d
	if depth > 1 {
		imageType = vk.ImageType3d
	}

	var imageInfo = vk.ImageCreateInfo{}
	imageInfo.SType = vk.StructureTypeImageCreateInfo
	imageInfo.ImageType = imageType
	imageInfo.Extent.Width = width
	imageInfo.Extent.Height = height
	imageInfo.Extent.Depth = depth
	imageInfo.MipLevels = 1
	imageInfo.ArrayLayers = 1
	imageInfo.Format = format
	imageInfo.Tiling = vk.ImageTilingOptimal
	imageInfo.InitialLayout = vk.ImageLayoutUndefined
	imageInfo.Usage = usage
	imageInfo.Samples = vk.SampleCount1Bit
	imageInfo.SharingMode = vk.SharingModeExclusive

	var image vk.Image

	err = vkErr(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image), "vkCreateImage")
	if err != nil {
		return nil, err
	}

	ret := &Image{
		Device:   d,
		VKImage:  image,
		VKFormat: format,
		Extent:   vk.Extent3D{Width: width, Height: height, Depth: depth},
		Layout:   vk.ImageLayoutUndefined,
		Size:     uint64(width) * uint64(height) * uint64(depth) * texel,
	}

	scope := &Scope{}
	scope.AddFunc(func() { vk.DestroyImage(d.VKDevice, image, nil) })

	mr := ret.GetMemoryRequirements()
	mem, err := d.Allocate(uint64(mr.Size), mr.MemoryTypeBits, props)
	if err != nil {
		scope.Release()
		return nil, errors.Wrap(err, "allocating image memory")
	}
	scope.Add(mem)

	if err := vkErr(vk.BindImageMemory(d.VKDevice, image, mem.VKDeviceMemory, 0), "vkBindImageMemory"); err != nil {
		scope.Release()
		return nil, err
	}
	ret.Memory = mem

	view, err := ret.CreateImageView()
	if err != nil {
		scope.Release()
		return nil, err
	}
	ret.View = view
	scope.Forget()

	Logger().Debug("created image", "width", width, "height", height, "depth", depth, "format", int32(format), "size", ret.Size)

	return ret, nil
}

// DSInfo describes the image view in its current layout for a descriptor write
func (i *Image) DSInfo() vk.DescriptorImageInfo {
	info := vk.DescriptorImageInfo{ImageLayout: i.Layout}
	if i.View != nil {
		info.ImageView = i.View.VKImageView
	}
	return info
}

func (i *Image) Ref() ResourceRef {
	return ImageRef{Info: i.DSInfo()}
}

func (i *Image) ByteSize() uint64 {
	return i.Size
}

// Destroy destroys the view, the image and its memory
func (i *Image) Destroy() {
	if i.View != nil {
		i.View.Destroy()
		i.View = nil
	}
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
	if i.Memory != nil {
		i.Memory.Destroy()
		i.Memory = nil
	}
}

// copyRegion covers every texel of the image
func (i *Image) copyRegion() vk.BufferImageCopy {
	return vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		ImageOffset: vk.Offset3D{},
		ImageExtent: i.Extent,
	}
}

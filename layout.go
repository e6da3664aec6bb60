package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// LayoutTransition holds the access masks and pipeline stages of the barrier which moves an
// image from one layout to another.
type LayoutTransition struct {
	SrcAccess vk.AccessFlags
	DstAccess vk.AccessFlags
	SrcStage  vk.PipelineStageFlags
	DstStage  vk.PipelineStageFlags
}

type layoutPair struct {
	from, to vk.ImageLayout
}

var (
	shaderReadWrite = vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessShaderWriteBit)
	computeStage    = vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit)
	transferStage   = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
)

// The images handled here only ever move between these four layouts. There are no
// implicit multi step transitions.
var layoutTransitions = map[layoutPair]LayoutTransition{
	{vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal}: {
		SrcAccess: 0,
		DstAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
		SrcStage:  vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
		DstStage:  transferStage,
	},
	{vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral}: {
		SrcAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
		DstAccess: shaderReadWrite,
		SrcStage:  transferStage,
		DstStage:  computeStage,
	},
	{vk.ImageLayoutGeneral, vk.ImageLayoutTransferSrcOptimal}: {
		SrcAccess: shaderReadWrite,
		DstAccess: vk.AccessFlags(vk.AccessTransferReadBit),
		SrcStage:  computeStage,
		DstStage:  transferStage,
	},
	{vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutGeneral}: {
		SrcAccess: vk.AccessFlags(vk.AccessTransferReadBit),
		DstAccess: shaderReadWrite,
		SrcStage:  transferStage,
		DstStage:  computeStage,
	},
}

// LayoutTransitionFor returns the barrier parameters for moving an image from one layout to
// another, or ErrUnsupportedTransition when the pair is not supported.
func LayoutTransitionFor(from, to vk.ImageLayout) (LayoutTransition, error) {
	t, ok := layoutTransitions[layoutPair{from, to}]
	if !ok {
		return LayoutTransition{}, errors.Wrapf(ErrUnsupportedTransition, "%d -> %d", from, to)
	}
	return t, nil
}

// ImageBarrier builds the image memory barrier for this transition over the whole image.
func (t LayoutTransition) ImageBarrier(img vk.Image, from, to vk.ImageLayout) vk.ImageMemoryBarrier {
	return vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       t.SrcAccess,
		DstAccessMask:       t.DstAccess,
		OldLayout:           from,
		NewLayout:           to,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

// TransitionImageLayout records a single barrier moving img from its current layout to the
// given one, then updates img.Layout. Nothing is recorded for an unsupported pair.
func TransitionImageLayout(rec Recorder, img *Image, to vk.ImageLayout) error {
	from := img.Layout
	t, err := LayoutTransitionFor(from, to)
	if err != nil {
		return err
	}

	rec.CmdPipelineBarrier(t.SrcStage, t.DstStage, nil, []vk.ImageMemoryBarrier{t.ImageBarrier(img.VKImage, from, to)})
	img.Layout = to

	return nil
}

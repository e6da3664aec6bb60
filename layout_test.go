package vkc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

var testLayouts = []vk.ImageLayout{
	vk.ImageLayoutUndefined,
	vk.ImageLayoutGeneral,
	vk.ImageLayoutTransferSrcOptimal,
	vk.ImageLayoutTransferDstOptimal,
	vk.ImageLayoutShaderReadOnlyOptimal,
	vk.ImageLayoutColorAttachmentOptimal,
	vk.ImageLayoutPreinitialized,
}

func supportedTransition(from, to vk.ImageLayout) bool {
	switch {
	case from == vk.ImageLayoutUndefined && to == vk.ImageLayoutTransferDstOptimal:
	case from == vk.ImageLayoutTransferDstOptimal && to == vk.ImageLayoutGeneral:
	case from == vk.ImageLayoutGeneral && to == vk.ImageLayoutTransferSrcOptimal:
	case from == vk.ImageLayoutTransferSrcOptimal && to == vk.ImageLayoutGeneral:
	default:
		return false
	}
	return true
}

func TestTransitionImageLayoutWhitelist(t *testing.T) {
	for _, from := range testLayouts {
		for _, to := range testLayouts {
			rec := &fakeRecorder{}
			img := &Image{Layout: from}

			err := TransitionImageLayout(rec, img, to)

			if supportedTransition(from, to) {
				require.NoError(t, err, "%d -> %d", from, to)
				assert.Equal(t, to, img.Layout)
				require.Len(t, rec.imageBarriers, 1)
				assert.Equal(t, from, rec.imageBarriers[0].OldLayout)
				assert.Equal(t, to, rec.imageBarriers[0].NewLayout)
				assert.Empty(t, rec.memoryBarriers)
			} else {
				assert.ErrorIs(t, err, ErrUnsupportedTransition, "%d -> %d", from, to)
				assert.Equal(t, from, img.Layout)
				assert.Empty(t, rec.ops)
			}
		}
	}
}

func TestLayoutTransitionMasks(t *testing.T) {
	rw := vk.AccessFlags(vk.AccessShaderReadBit | vk.AccessShaderWriteBit)
	compute := vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit)
	transfer := vk.PipelineStageFlags(vk.PipelineStageTransferBit)

	tests := []struct {
		from, to vk.ImageLayout
		want     LayoutTransition
	}{
		{vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal, LayoutTransition{
			SrcAccess: 0, DstAccess: vk.AccessFlags(vk.AccessTransferWriteBit),
			SrcStage: vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit), DstStage: transfer,
		}},
		{vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral, LayoutTransition{
			SrcAccess: vk.AccessFlags(vk.AccessTransferWriteBit), DstAccess: rw,
			SrcStage: transfer, DstStage: compute,
		}},
		{vk.ImageLayoutGeneral, vk.ImageLayoutTransferSrcOptimal, LayoutTransition{
			SrcAccess: rw, DstAccess: vk.AccessFlags(vk.AccessTransferReadBit),
			SrcStage: compute, DstStage: transfer,
		}},
		{vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutGeneral, LayoutTransition{
			SrcAccess: vk.AccessFlags(vk.AccessTransferReadBit), DstAccess: rw,
			SrcStage: transfer, DstStage: compute,
		}},
	}
	for _, tt := range tests {
		got, err := LayoutTransitionFor(tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		rec := &fakeRecorder{}
		img := &Image{Layout: tt.from}
		require.NoError(t, TransitionImageLayout(rec, img, tt.to))
		require.Len(t, rec.stages, 1)
		assert.Equal(t, [2]vk.PipelineStageFlags{tt.want.SrcStage, tt.want.DstStage}, rec.stages[0])
		b := rec.imageBarriers[0]
		assert.Equal(t, tt.want.SrcAccess, b.SrcAccessMask)
		assert.Equal(t, tt.want.DstAccess, b.DstAccessMask)
		assert.Equal(t, uint32(vk.QueueFamilyIgnored), b.SrcQueueFamilyIndex)
		assert.Equal(t, uint32(1), b.SubresourceRange.LevelCount)
		assert.Equal(t, uint32(1), b.SubresourceRange.LayerCount)
	}
}

func TestNoMultiHopTransition(t *testing.T) {
	rec := &fakeRecorder{}
	img := &Image{Layout: vk.ImageLayoutUndefined}

	err := TransitionImageLayout(rec, img, vk.ImageLayoutGeneral)
	assert.ErrorIs(t, err, ErrUnsupportedTransition)

	require.NoError(t, TransitionImageLayout(rec, img, vk.ImageLayoutTransferDstOptimal))
	require.NoError(t, TransitionImageLayout(rec, img, vk.ImageLayoutGeneral))
	assert.Equal(t, vk.ImageLayoutGeneral, img.Layout)
	assert.Len(t, rec.imageBarriers, 2)
}

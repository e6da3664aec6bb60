package vkc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

type otherResource struct{}

func (otherResource) Destroy()         {}
func (otherResource) ByteSize() uint64 { return 4 }
func (otherResource) Ref() ResourceRef { return BufferRef{} }

func TestRecordImageUpload(t *testing.T) {
	rec := &fakeRecorder{}
	img := &Image{Layout: vk.ImageLayoutUndefined}

	require.NoError(t, recordImageUpload(rec, &Buffer{}, img))

	assert.Equal(t, []string{"barrier", "copyBufferToImage", "barrier"}, rec.ops)
	require.Len(t, rec.imageBarriers, 2)
	assert.Equal(t, vk.ImageLayoutTransferDstOptimal, rec.imageBarriers[0].NewLayout)
	assert.Equal(t, vk.ImageLayoutGeneral, rec.imageBarriers[1].NewLayout)
	assert.Equal(t, vk.ImageLayoutGeneral, img.Layout)
}

func TestRecordImageDownload(t *testing.T) {
	rec := &fakeRecorder{}
	img := &Image{Layout: vk.ImageLayoutGeneral}

	require.NoError(t, recordImageDownload(rec, img, &Buffer{}))

	assert.Equal(t, []string{"barrier", "copyImageToBuffer", "barrier"}, rec.ops)
	require.Len(t, rec.imageBarriers, 2)
	assert.Equal(t, vk.ImageLayoutTransferSrcOptimal, rec.imageBarriers[0].NewLayout)
	assert.Equal(t, vk.ImageLayoutGeneral, rec.imageBarriers[1].NewLayout)
	assert.Equal(t, vk.ImageLayoutGeneral, img.Layout)
}

func TestRecordImageDownloadFromUndefined(t *testing.T) {
	rec := &fakeRecorder{}
	img := &Image{Layout: vk.ImageLayoutUndefined}

	err := recordImageDownload(rec, img, &Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedTransition)
	assert.Empty(t, rec.ops)
}

func TestCheckTransitions(t *testing.T) {
	assert.NoError(t, checkTransitions(vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral))
	assert.NoError(t, checkTransitions(vk.ImageLayoutGeneral, vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutGeneral))
	assert.ErrorIs(t, checkTransitions(vk.ImageLayoutGeneral, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral), ErrUnsupportedTransition)
	assert.ErrorIs(t, checkTransitions(vk.ImageLayoutUndefined, vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutGeneral), ErrUnsupportedTransition)
}

func TestTransferSizeChecks(t *testing.T) {
	b := &Buffer{Size: 20}
	assert.NoError(t, checkBufferTransfer(b, 1))
	assert.NoError(t, checkBufferTransfer(b, 20))
	assert.ErrorIs(t, checkBufferTransfer(b, 0), ErrInvalidSize)
	assert.ErrorIs(t, checkBufferTransfer(b, 21), ErrInvalidSize)

	img := &Image{Size: 64}
	assert.NoError(t, checkImageTransfer(img, 64))
	assert.ErrorIs(t, checkImageTransfer(img, 63), ErrInvalidSize)
	assert.ErrorIs(t, checkImageTransfer(img, 65), ErrInvalidSize)
}

// these all fail before anything touches the device
func TestTransferRejectedBeforeRecording(t *testing.T) {
	c := &Context{}

	assert.ErrorIs(t, c.Upload(otherResource{}, []byte{1, 2, 3, 4}), ErrUnsupportedResource)
	assert.ErrorIs(t, c.Download(otherResource{}, make([]byte, 4)), ErrUnsupportedResource)

	assert.ErrorIs(t, c.Upload(&Buffer{Size: 4}, nil), ErrInvalidSize)
	assert.ErrorIs(t, c.Download(&Buffer{Size: 4}, make([]byte, 8)), ErrInvalidSize)

	img := &Image{Size: 16, Layout: vk.ImageLayoutGeneral}
	assert.ErrorIs(t, c.Upload(img, make([]byte, 16)), ErrUnsupportedTransition)
	assert.ErrorIs(t, c.Upload(img, make([]byte, 15)), ErrInvalidSize)
	assert.Equal(t, vk.ImageLayoutGeneral, img.Layout)

	img = &Image{Size: 16, Layout: vk.ImageLayoutUndefined}
	assert.ErrorIs(t, c.Download(img, make([]byte, 16)), ErrUnsupportedTransition)
	assert.Equal(t, vk.ImageLayoutUndefined, img.Layout)
}

func TestTrackLayout(t *testing.T) {
	tests := map[string]struct {
		err  error
		want vk.ImageLayout
	}{
		"success":           {nil, vk.ImageLayoutGeneral},
		"recording failed":  {ErrUnsupportedTransition, vk.ImageLayoutUndefined},
		"submit failed":     {errors.Wrap(errors.New("VK_ERROR_OUT_OF_DEVICE_MEMORY"), "vkQueueSubmit"), vk.ImageLayoutUndefined},
		"wait failed":       {errors.Wrap(errors.Wrap(ErrQueueWait, "VK_ERROR_DEVICE_LOST"), "submitting commands"), vk.ImageLayoutGeneral},
		"wait failed, bare": {ErrQueueWait, vk.ImageLayoutGeneral},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			img := &Image{Layout: vk.ImageLayoutUndefined}
			require.NoError(t, recordImageUpload(&fakeRecorder{}, &Buffer{}, img))

			err := trackLayout(img, vk.ImageLayoutUndefined, tt.err)
			assert.Equal(t, tt.err, err)
			assert.Equal(t, tt.want, img.Layout)
		})
	}
}

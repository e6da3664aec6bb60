package vkc

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

var stagingMemory = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

// Upload copies data into res through a temporary host visible buffer and waits for the copy
// to complete. A buffer accepts up to Size bytes, written from offset 0. An image accepts
// exactly Size bytes and ends up in the general layout.
func (c *Context) Upload(res Resource, data []byte) error {
	switch r := res.(type) {
	case *Buffer:
		return c.uploadBuffer(r, data)
	case *Image:
		return c.uploadImage(r, data)
	}
	return errors.Wrapf(ErrUnsupportedResource, "%T", res)
}

// Download copies len(dst) bytes out of res into dst and waits for the copy to complete. The
// size rules are the same as for Upload. Images must be in the general layout and are left
// in it.
func (c *Context) Download(res Resource, dst []byte) error {
	switch r := res.(type) {
	case *Buffer:
		return c.downloadBuffer(r, dst)
	case *Image:
		return c.downloadImage(r, dst)
	}
	return errors.Wrapf(ErrUnsupportedResource, "%T", res)
}

func checkBufferTransfer(b *Buffer, n int) error {
	if n == 0 || uint64(n) > b.Size {
		return errors.Wrapf(ErrInvalidSize, "transfer of %d bytes with a %d byte buffer", n, b.Size)
	}
	return nil
}

func checkImageTransfer(img *Image, n int) error {
	if uint64(n) != img.Size {
		return errors.Wrapf(ErrInvalidSize, "transfer of %d bytes with a %d byte image", n, img.Size)
	}
	return nil
}

// checkTransitions validates a chain of layouts starting at from
func checkTransitions(from vk.ImageLayout, to ...vk.ImageLayout) error {
	for _, l := range to {
		if _, err := LayoutTransitionFor(from, l); err != nil {
			return err
		}
		from = l
	}
	return nil
}

func (c *Context) createStagingBuffer(size int, usage vk.BufferUsageFlagBits) (*Buffer, error) {
	b, err := c.Device.CreateBuffer(uint64(size), vk.BufferUsageFlags(usage), stagingMemory)
	if err != nil {
		return nil, errors.Wrap(err, "creating staging buffer")
	}
	return b, nil
}

func (c *Context) uploadBuffer(b *Buffer, data []byte) error {
	if err := checkBufferTransfer(b, len(data)); err != nil {
		return err
	}

	staging, err := c.createStagingBuffer(len(data), vk.BufferUsageTransferSrcBit)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	if err := staging.Memory.MapCopyUnmap(data); err != nil {
		return err
	}

	Logger().Debug("uploading buffer", "bytes", len(data))

	return c.oneTime(func(rec Recorder) error {
		rec.CmdCopyBuffer(staging, b, uint64(len(data)))
		return nil
	})
}

func (c *Context) downloadBuffer(b *Buffer, dst []byte) error {
	if err := checkBufferTransfer(b, len(dst)); err != nil {
		return err
	}

	staging, err := c.createStagingBuffer(len(dst), vk.BufferUsageTransferDstBit)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	Logger().Debug("downloading buffer", "bytes", len(dst))

	err = c.oneTime(func(rec Recorder) error {
		rec.CmdCopyBuffer(b, staging, uint64(len(dst)))
		return nil
	})
	if err != nil {
		return err
	}

	return staging.Memory.MapReadUnmap(dst)
}

func (c *Context) uploadImage(img *Image, data []byte) error {
	if err := checkImageTransfer(img, len(data)); err != nil {
		return err
	}
	if err := checkTransitions(img.Layout, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutGeneral); err != nil {
		return err
	}

	staging, err := c.createStagingBuffer(len(data), vk.BufferUsageTransferSrcBit)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	if err := staging.Memory.MapCopyUnmap(data); err != nil {
		return err
	}

	Logger().Debug("uploading image", "bytes", len(data))

	prev := img.Layout
	err = c.oneTime(func(rec Recorder) error {
		return recordImageUpload(rec, staging, img)
	})
	return trackLayout(img, prev, err)
}

func (c *Context) downloadImage(img *Image, dst []byte) error {
	if err := checkImageTransfer(img, len(dst)); err != nil {
		return err
	}
	if err := checkTransitions(img.Layout, vk.ImageLayoutTransferSrcOptimal, vk.ImageLayoutGeneral); err != nil {
		return err
	}

	staging, err := c.createStagingBuffer(len(dst), vk.BufferUsageTransferDstBit)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	Logger().Debug("downloading image", "bytes", len(dst))

	prev := img.Layout
	err = c.oneTime(func(rec Recorder) error {
		return recordImageDownload(rec, img, staging)
	})
	if err := trackLayout(img, prev, err); err != nil {
		return err
	}

	return staging.Memory.MapReadUnmap(dst)
}

// trackLayout puts img back in prev when err means the recorded transitions never reached
// the queue. Once submitted they may have run, so the recorded layout is kept.
func trackLayout(img *Image, prev vk.ImageLayout, err error) error {
	if err != nil && !errors.Is(err, ErrQueueWait) {
		img.Layout = prev
	}
	return err
}

func recordImageUpload(rec Recorder, src *Buffer, img *Image) error {
	if err := TransitionImageLayout(rec, img, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	rec.CmdCopyBufferToImage(src, img)
	return TransitionImageLayout(rec, img, vk.ImageLayoutGeneral)
}

func recordImageDownload(rec Recorder, img *Image, dst *Buffer) error {
	if err := TransitionImageLayout(rec, img, vk.ImageLayoutTransferSrcOptimal); err != nil {
		return err
	}
	rec.CmdCopyImageToBuffer(img, dst)
	return TransitionImageLayout(rec, img, vk.ImageLayoutGeneral)
}

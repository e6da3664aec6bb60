package vkc

import (
	"github.com/pkg/errors"
)

// Options configures NewContext.
type Options struct {
	// Name is reported to the driver as the application name
	Name string
	// Validation enables the Khronos validation layer when it is installed, its messages
	// are sent to the package logger
	Validation bool
	// DeviceIndex selects the physical device, in enumeration order
	DeviceIndex int
	// InstanceExtensions and DeviceExtensions are enabled in addition to the ones this
	// package needs
	InstanceExtensions []string
	DeviceExtensions   []string
}

// Context owns the device, the single compute queue and the long lived command pool every
// other operation in this package runs on. Create one with NewContext and pass it to the
// code that needs it.
type Context struct {
	Instance       *Instance
	PhysicalDevice *PhysicalDevice
	Device         *Device
	QueueFamily    *QueueFamily
	Queue          *Queue
	CommandPool    *CommandPool
}

// NewContext loads vulkan, creates an instance, opens the selected physical device with one
// queue from its first compute family and creates a command pool for that queue. On failure
// everything created so far is destroyed.
func NewContext(opts Options) (*Context, error) {
	if err := InitializeForComputeOnly(); err != nil {
		return nil, err
	}

	app := &App{
		Name:       opts.Name,
		EngineName: "vkc",
		APIVersion: Version{Major: 1},
	}

	validation := false
	if opts.Validation {
		if err := app.EnableDebugging(); err != nil {
			Logger().Warn("validation disabled", "err", err)
		} else {
			validation = true
		}
	}
	for _, e := range opts.InstanceExtensions {
		app.EnableExtension(e)
	}

	scope := &Scope{}

	instance, err := app.CreateInstance()
	if err != nil {
		return nil, errors.Wrap(err, "creating instance")
	}
	scope.Add(instance)

	if validation {
		if err := instance.UseDefaultDebugCallback(); err != nil {
			Logger().Warn("debug callback not installed", "err", err)
		}
	}

	devices, err := instance.PhysicalDevices()
	if err != nil {
		scope.Release()
		return nil, err
	}
	if opts.DeviceIndex < 0 || opts.DeviceIndex >= len(devices) {
		scope.Release()
		return nil, errors.Wrapf(ErrNoDevice, "device %d requested, %d available", opts.DeviceIndex, len(devices))
	}
	pd := devices[opts.DeviceIndex]

	qfs, err := pd.QueueFamilies()
	if err != nil {
		scope.Release()
		return nil, err
	}
	compute := qfs.FilterCompute()
	if len(compute) == 0 {
		scope.Release()
		return nil, errors.Wrapf(ErrNoDevice, "%s has no compute queue", pd)
	}
	qf := compute[0]

	Logger().Info("selected device", "name", pd.DeviceName, "queueFamily", qf.Index)

	device, err := pd.CreateLogicalDevice(QueueFamilySlice{qf}, opts.DeviceExtensions...)
	if err != nil {
		scope.Release()
		return nil, errors.Wrap(err, "creating logical device")
	}
	scope.Add(device)

	pool, err := device.CreateCommandPool(qf)
	if err != nil {
		scope.Release()
		return nil, err
	}
	scope.Forget()

	return &Context{
		Instance:       instance,
		PhysicalDevice: pd,
		Device:         device,
		QueueFamily:    qf,
		Queue:          device.GetQueue(qf),
		CommandPool:    pool,
	}, nil
}

// WaitIdle blocks until the device has finished all submitted work
func (c *Context) WaitIdle() error {
	return c.Device.WaitIdle()
}

// Destroy waits for the device to go idle and destroys the command pool, the device and
// the instance. Resources created from the context must have been destroyed first.
func (c *Context) Destroy() {
	if err := c.WaitIdle(); err != nil {
		Logger().Warn("waiting for device before destroy", "err", err)
	}
	c.CommandPool.Destroy()
	c.Device.Destroy()
	c.Instance.Destroy()
}

// oneTime runs record in a command buffer begun for a single submission
func (c *Context) oneTime(record func(rec Recorder) error) error {
	return c.submit((*CommandBuffer).BeginOneTime, record)
}

// submit allocates a command buffer, starts it with begin, records into it with record,
// submits it and waits for the queue to drain. The command buffer is freed on every path.
func (c *Context) submit(begin func(*CommandBuffer) error, record func(rec Recorder) error) error {
	cb, err := c.CommandPool.AllocateBuffer()
	if err != nil {
		return errors.Wrap(err, "allocating command buffer")
	}
	defer c.CommandPool.FreeBuffer(cb)

	if err := begin(cb); err != nil {
		return err
	}
	if err := record(cb); err != nil {
		return err
	}
	if err := cb.End(); err != nil {
		return err
	}
	return errors.Wrap(c.Queue.SubmitWaitIdle(cb), "submitting commands")
}

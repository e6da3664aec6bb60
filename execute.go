package vkc

import (
	"github.com/pkg/errors"
)

// Execute runs every stage of group once, in order, against set and blocks until the queue
// is idle. Results can be downloaded as soon as it returns.
func (c *Context) Execute(group *PipelineGroup, set *DescriptorSet) error {
	Logger().Debug("executing pipeline group", "stages", len(group.stages))

	err := c.submit((*CommandBuffer).Begin, func(rec Recorder) error {
		return group.Record(rec, set)
	})
	return errors.Wrap(err, "executing pipeline group")
}

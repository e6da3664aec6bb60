package vkc

import (
	"fmt"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// EntryPoint is the function every compute shader stage starts at
const EntryPoint = "main"

// Extent is a number of workgroups to dispatch in each dimension
type Extent struct {
	X, Y, Z uint32
}

func (e Extent) String() string {
	return fmt.Sprintf("(%d,%d,%d)", e.X, e.Y, e.Z)
}

// Stage is a compute pipeline and the extent it is dispatched with
type Stage struct {
	Pipeline *ComputePipeline
	Extent   Extent
}

// PipelineGroup is an ordered sequence of compute stages sharing one pipeline layout, and
// so one descriptor set.
type PipelineGroup struct {
	Device *Device
	Layout *PipelineLayout
	Cache  *PipelineCache
	stages []Stage
}

// BuildPipelineGroup creates one compute pipeline per shader, all using a pipeline layout
// made from layout. shaders[i] is dispatched with extents[i]. The two slices must have the
// same, non zero, length and every extent must be positive in all dimensions. On failure
// every object created so far is destroyed.
func (c *Context) BuildPipelineGroup(loader ShaderLoader, shaders []string, extents []Extent, layout *DescriptorSetLayout) (*PipelineGroup, error) {
	if len(shaders) != len(extents) {
		return nil, errors.Wrapf(ErrStageCount, "%d shaders, %d extents", len(shaders), len(extents))
	}
	if len(shaders) == 0 {
		return nil, errors.Wrap(ErrInvalidSize, "no stages")
	}
	for i, e := range extents {
		if e.X == 0 || e.Y == 0 || e.Z == 0 {
			return nil, errors.Wrapf(ErrInvalidSize, "stage %d extent %s", i, e)
		}
	}

	d := c.Device
	scope := &Scope{}

	pl, err := d.CreatePipelineLayout(layout)
	if err != nil {
		return nil, err
	}
	scope.Add(pl)

	cache, err := d.CreatePipelineCache()
	if err != nil {
		scope.Release()
		return nil, err
	}
	scope.Add(cache)

	group := &PipelineGroup{Device: d, Layout: pl, Cache: cache}
	for i, name := range shaders {
		p, err := buildStage(d, loader, name, pl, cache)
		if err != nil {
			scope.Release()
			return nil, errors.Wrapf(err, "stage %d", i)
		}
		scope.Add(p)
		group.stages = append(group.stages, Stage{Pipeline: p, Extent: extents[i]})

		Logger().Debug("created compute pipeline", "shader", name, "extent", extents[i].String())
	}
	scope.Forget()

	return group, nil
}

func buildStage(d *Device, loader ShaderLoader, name string, layout *PipelineLayout, cache *PipelineCache) (*ComputePipeline, error) {
	module, err := d.LoadShaderModule(loader, name)
	if err != nil {
		return nil, err
	}
	defer module.Destroy()

	p := &ComputePipeline{Name: name}
	p.SetPipelineLayout(layout)
	p.SetShaderStage(EntryPoint, module)
	if err := d.CreateComputePipelines(cache, p); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}

// Stages returns the stages in dispatch order
func (g *PipelineGroup) Stages() []Stage {
	return append([]Stage(nil), g.stages...)
}

// stageBarrier makes every shader write of one stage visible to the next
var stageBarrier = vk.MemoryBarrier{
	SType:         vk.StructureTypeMemoryBarrier,
	SrcAccessMask: vk.AccessFlags(vk.AccessShaderWriteBit),
	DstAccessMask: vk.AccessFlags(vk.AccessShaderReadBit),
}

// Record binds set once and then binds, dispatches and places a memory barrier after every
// stage in order.
func (g *PipelineGroup) Record(rec Recorder, set *DescriptorSet) error {
	if set == nil {
		return ErrNotBuilt
	}
	rec.CmdBindDescriptorSets(vk.PipelineBindPointCompute, g.Layout, 0, set)
	for _, s := range g.stages {
		rec.CmdBindComputePipeline(s.Pipeline)
		rec.CmdDispatch(s.Extent.X, s.Extent.Y, s.Extent.Z)
		rec.CmdPipelineBarrier(computeStage, computeStage, []vk.MemoryBarrier{stageBarrier}, nil)
	}
	return nil
}

// Destroy destroys the pipelines, the cache and then the layout
func (g *PipelineGroup) Destroy() {
	for _, s := range g.stages {
		s.Pipeline.Destroy()
	}
	g.stages = nil
	g.Cache.Destroy()
	g.Layout.Destroy()
}

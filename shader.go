package vkc

import (
	"encoding/binary"
	"io/fs"
	"os"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// SPIRVMagic is the first word of every SPIR-V module
const SPIRVMagic = 0x07230203

// ShaderLoader returns compiled SPIR-V by name.
type ShaderLoader interface {
	LoadShader(name string) ([]byte, error)
}

// FSShaderLoader loads shaders from a file system, for instance an embed.FS.
type FSShaderLoader struct {
	FS fs.FS
}

func (l FSShaderLoader) LoadShader(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, errors.Wrapf(err, "reading shader %s", name)
	}
	if err := ValidateSPIRV(data); err != nil {
		return nil, errors.Wrap(err, name)
	}
	return data, nil
}

// DirShaderLoader loads shaders from files in dir
func DirShaderLoader(dir string) FSShaderLoader {
	return FSShaderLoader{FS: os.DirFS(dir)}
}

// ValidateSPIRV does a shallow check of a SPIR-V blob: a whole number of words, starting
// with the magic number.
func ValidateSPIRV(code []byte) error {
	if len(code) == 0 || len(code)%4 != 0 {
		return errors.Wrapf(ErrInvalidShader, "length %d", len(code))
	}
	if magic := binary.LittleEndian.Uint32(code); magic != SPIRVMagic {
		return errors.Wrapf(ErrInvalidShader, "magic %#08x", magic)
	}
	return nil
}

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

// LoadShaderModule reads name through loader and creates a shader module from it
func (d *Device) LoadShaderModule(loader ShaderLoader, name string) (*ShaderModule, error) {
	code, err := loader.LoadShader(name)
	if err != nil {
		return nil, err
	}
	return d.CreateShaderModule(name, code)
}

// CreateShaderModule creates a shader module from SPIR-V code
func (d *Device) CreateShaderModule(description string, code []byte) (*ShaderModule, error) {
	if err := ValidateSPIRV(code); err != nil {
		return nil, errors.Wrap(err, description)
	}
	var module vk.ShaderModule
	err := vkErr(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module), "vkCreateShaderModule")

	if err != nil {
		return nil, errors.Wrap(err, description)
	}

	var ret ShaderModule
	ret.VKShaderModule = module
	ret.Device = d
	ret.Description = description
	return &ret, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	var shaderStageCreateInfo = vk.PipelineShaderStageCreateInfo{}
	shaderStageCreateInfo.SType = vk.StructureTypePipelineShaderStageCreateInfo
	shaderStageCreateInfo.Stage = stage
	shaderStageCreateInfo.Module = s.VKShaderModule
	shaderStageCreateInfo.PName = safeString(entryPoint)
	return shaderStageCreateInfo
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

// sliceUint32 copies data into a word slice, byte slices carry no alignment guarantee
func sliceUint32(data []byte) []uint32 {
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words
}

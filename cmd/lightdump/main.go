package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strings"

	"RenderPipeline/internal/gpucommand"
	"RenderPipeline/internal/light"
	"RenderPipeline/internal/lightmgr"
	"RenderPipeline/internal/logger"
	"RenderPipeline/internal/shadow"

	"go.uber.org/zap"
)

func main() {
	scenePath := flag.String("scene", "lights.yaml", "light scene (.yaml, .yml or .json)")
	configPath := flag.String("config", "", "optional light defaults (.yaml, .yml or .json)")
	binaryPath := flag.String("out", "", "also write raw float32 command records to this file")
	vulkanPath := flag.String("vulkan", "", "also write each uploaded shadow source's MVP as a linmath matrix to this file")
	production := flag.Bool("production", false, "use the production log encoder")
	flag.Parse()

	logger.InitWith(*production)
	defer logger.Sync()

	if err := run(options{
		scenePath:  *scenePath,
		configPath: *configPath,
		binaryPath: *binaryPath,
		vulkanPath: *vulkanPath,
	}); err != nil {
		logger.Log.Error("lightdump failed", zap.Error(err))
		os.Exit(1)
	}
}

type options struct {
	scenePath  string
	configPath string
	binaryPath string
	vulkanPath string
}

func run(opts options) error {
	cfg := light.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = light.LoadConfig(opts.configPath); err != nil {
			return err
		}
	}

	scene, err := loadScene(opts.scenePath)
	if err != nil {
		return err
	}

	mgr := lightmgr.NewManager()
	for i, desc := range scene.Lights {
		l, err := desc.build(cfg)
		if err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
		if err := mgr.AddLight(l); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	mgr.Update()

	cmds := mgr.Commands().PopCommands(0)
	logger.Log.Info("Scene encoded",
		zap.String("scene", opts.scenePath),
		zap.Int("lights", mgr.NumLights()),
		zap.Int("shadowSources", mgr.NumShadowSources()),
		zap.Int("commands", len(cmds)))

	for _, cmd := range cmds {
		fmt.Println(formatCommand(cmd))
	}

	if scene.Camera != nil {
		visible := mgr.SourcesInView(scene.Camera.ViewProjection())
		fmt.Printf("visible shadow sources: %d of %d\n", len(visible), mgr.NumShadowSources())
	}

	if opts.binaryPath != "" {
		if err := writeBinary(opts.binaryPath, cmds); err != nil {
			return err
		}
	}
	if opts.vulkanPath != "" {
		return writeVulkanMatrices(opts.vulkanPath, mgr.ShadowSources())
	}
	return nil
}

func formatCommand(cmd *gpucommand.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-14s", cmd.Type)
	for _, f := range cmd.Payload() {
		fmt.Fprintf(&b, " %g", f)
	}
	return b.String()
}

// writeVulkanMatrices writes one little-endian linmath.Mat4x4 per source,
// in the order the manager attached them.
func writeVulkanMatrices(path string, sources []*shadow.Source) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	for _, src := range sources {
		if err := binary.Write(f, binary.LittleEndian, src.MVPVulkan()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return f.Close()
}

func writeBinary(path string, cmds []*gpucommand.Command) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	for _, cmd := range cmds {
		if _, err := cmd.WriteTo(f); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return f.Close()
}

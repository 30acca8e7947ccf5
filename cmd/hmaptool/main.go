// hmaptool is a CLI utility for heightmaps and view-state documents.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/export"
	"github.com/Faultbox/qterrain/internal/loader"
	"github.com/Faultbox/qterrain/internal/viewstate"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "export":
		err = cmdExport(args)
	case "state":
		err = cmdState(args)
	case "sample":
		err = cmdSample(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hmaptool - heightmap and view-state utility

Usage:
  hmaptool <command> [options]

Commands:
  info <heightmap|model.glb>              Show size, format and elevation range,
                                          or the meshes of an exported model
  export [options] <heightmap>            Tessellate and write glTF (.glb or .gltf)
  state <validate|print|normalize> <file> Check or rewrite a view-state JSON
  sample [options] <heightmap> <u> <v>    Sample the heightmap at normalized (u, v)

Examples:
  hmaptool info terrain.png
  hmaptool export -o terrain.glb -albedo color.png -skirt terrain.tif
  hmaptool state normalize -o clean.json view.json
  hmaptool sample -state view.json terrain.png 0.5 0.5`)
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	maxRes := fs.Int("max", 0, "Downsample to at most N samples per side (0 = full size)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: hmaptool info [-max N] <heightmap>")
	}

	switch strings.ToLower(filepath.Ext(fs.Arg(0))) {
	case ".glb", ".gltf":
		return modelInfo(fs.Arg(0))
	}

	hm, err := loader.LoadHeightmap(fs.Arg(0), *maxRes)
	if err != nil {
		return err
	}
	lo, hi := hm.Range()

	fmt.Printf("File:    %s\n", fs.Arg(0))
	fmt.Printf("Format:  %s\n", hm.Format)
	fmt.Printf("Size:    %d x %d (%d samples)\n", hm.Width, hm.Height, len(hm.Data))
	fmt.Printf("Range:   %.6f .. %.6f\n", lo, hi)
	fmt.Printf("Mesh:    %d vertices, %d triangles (no skirt)\n",
		hm.Width*hm.Height, 2*(hm.Width-1)*(hm.Height-1))
	return nil
}

// modelInfo lists the meshes of a file written by export.
func modelInfo(path string) error {
	meshes, err := export.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("File:    %s\n", path)
	fmt.Printf("Meshes:  %d\n", len(meshes))
	for _, m := range meshes {
		fmt.Printf("  %-8s %d vertices, %d triangles\n", m.Name, len(m.Geometry.Vertices), m.Geometry.TriangleCount())
	}
	return nil
}

// exportOptions selects what cmdExport writes.
type exportOptions struct {
	heightmap  string
	albedo     string
	water      string
	state      string
	maxRes     int
	addSkirt   bool
	waterLevel float64
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "terrain.glb", "Output file (.glb or .gltf)")
	var opts exportOptions
	fs.StringVar(&opts.albedo, "albedo", "", "Albedo image embedded as the terrain texture")
	fs.StringVar(&opts.water, "water", "", "Water heightmap exported as a second mesh")
	fs.StringVar(&opts.state, "state", "", "View-state JSON providing the terrain placement")
	fs.IntVar(&opts.maxRes, "max", 0, "Downsample to at most N samples per side (0 = full size)")
	fs.BoolVar(&opts.addSkirt, "skirt", false, "Close the terrain sides with a skirt")
	fs.Float64Var(&opts.waterLevel, "water-level", 0, "Raw level added to the water surface")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: hmaptool export [options] <heightmap>")
	}
	opts.heightmap = fs.Arg(0)

	meshes, err := exportMeshes(opts)
	if err != nil {
		return err
	}
	if err := export.Save(*out, meshes...); err != nil {
		return err
	}
	for _, m := range meshes {
		fmt.Printf("  %-8s %d vertices, %d triangles\n", m.Name, len(m.Geometry.Vertices), m.Geometry.TriangleCount())
	}
	fmt.Printf("Wrote %s\n", *out)
	return nil
}

// exportMeshes tessellates the inputs named in opts in world units.
func exportMeshes(opts exportOptions) ([]export.Mesh, error) {
	st, err := loadState(opts.state)
	if err != nil {
		return nil, err
	}
	t := st.Terrain()

	hm, err := loader.LoadHeightmap(opts.heightmap, opts.maxRes)
	if err != nil {
		return nil, err
	}
	surface, err := terrain.Generate(hm.Data, hm.Width, hm.Height, t.HeightmapParams(opts.addSkirt))
	if err != nil {
		return nil, fmt.Errorf("tessellating %s: %w", opts.heightmap, err)
	}
	meshes := []export.Mesh{{Name: "terrain", Geometry: &surface.Geometry}}

	if opts.albedo != "" {
		img, _, err := loader.Open(opts.albedo)
		if err != nil {
			return nil, err
		}
		meshes[0].Albedo = img
	}

	if opts.water != "" {
		whm, err := loader.LoadHeightmap(opts.water, opts.maxRes)
		if err != nil {
			return nil, err
		}
		w := st.Water()
		p := t.HeightmapParams(false)
		p.AddLevel = float32(opts.waterLevel)
		wm, err := terrain.Generate(whm.Data, whm.Width, whm.Height, p)
		if err != nil {
			return nil, fmt.Errorf("tessellating %s: %w", opts.water, err)
		}
		c := w.ColorShallow
		meshes = append(meshes, export.Mesh{
			Name:     "water",
			Geometry: &wm.Geometry,
			Color:    [4]float64{float64(c[0]), float64(c[1]), float64(c[2]), 1},
		})
	}
	return meshes, nil
}

func loadState(path string) (*viewstate.State, error) {
	st := viewstate.New()
	if path == "" {
		return st, nil
	}
	if err := st.Load(path); err != nil {
		return nil, err
	}
	return st, nil
}

func cmdState(args []string) error {
	fs := flag.NewFlagSet("state", flag.ExitOnError)
	out := fs.String("o", "", "Output file for normalize (default: overwrite input)")
	if len(args) < 1 {
		return fmt.Errorf("usage: hmaptool state <validate|print|normalize> [-o out] <file>")
	}
	action := args[0]
	fs.Parse(args[1:])
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: hmaptool state %s <file>", action)
	}
	path := fs.Arg(0)

	st, err := loadState(path)
	if err != nil {
		return err
	}

	switch action {
	case "validate":
		fmt.Printf("%s: ok\n", path)
	case "print":
		printState(st)
	case "normalize":
		dst := *out
		if dst == "" {
			dst = path
		}
		if err := st.Save(dst); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", dst)
	default:
		return fmt.Errorf("unknown state action %q", action)
	}
	return nil
}

func printState(st *viewstate.State) {
	o := st.Orbit()
	l := st.Light()
	t := st.Terrain()
	w := st.Water()

	if st.Title() != "" {
		fmt.Printf("Title:     %s\n", st.Title())
	}
	fmt.Printf("Mode:      %s\n", st.Mode())
	fmt.Printf("Wireframe: %t\n", st.Wireframe())
	fmt.Printf("Orbit:     distance %.3f, pitch %.3f, yaw %.3f\n", o.Distance, o.AlphaX, o.AlphaY)
	fmt.Printf("Lens:      fov %.3f, near %.3f, far %.3f\n", st.Lens().FOV, st.Lens().Near, st.Lens().Far)
	fmt.Printf("Sun:       theta %.3f, phi %.3f, distance %.3f\n", l.Theta, l.Phi, l.Distance)
	fmt.Printf("Terrain:   scale_h %.3f, h0 %.3f, w %.3f, h %.3f\n", t.ScaleH, t.HmapH0, t.HmapW, t.HmapH)
	fmt.Printf("Water:     elevation %.3f, animate %t\n", w.Elevation, w.Animate)
	fmt.Print("Layers:   ")
	for _, layer := range viewstate.AllLayers() {
		if st.Visible(layer) {
			fmt.Printf(" %s", layer)
		}
	}
	fmt.Println()
}

// sampleResult is printed as JSON so scripts can consume it.
type sampleResult struct {
	U     float32    `json:"u"`
	V     float32    `json:"v"`
	Raw   float32    `json:"raw"`
	World [3]float32 `json:"world"`
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	state := fs.String("state", "", "View-state JSON providing the terrain placement")
	maxRes := fs.Int("max", 0, "Downsample to at most N samples per side (0 = full size)")
	fs.Parse(args)

	if fs.NArg() < 3 {
		return fmt.Errorf("usage: hmaptool sample [options] <heightmap> <u> <v>")
	}
	u, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("parsing u: %w", err)
	}
	v, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("parsing v: %w", err)
	}

	st, err := loadState(*state)
	if err != nil {
		return err
	}
	hm, err := loader.LoadHeightmap(fs.Arg(0), *maxRes)
	if err != nil {
		return err
	}

	res := sampleAt(st.Terrain(), hm, float32(u), float32(v))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func sampleAt(t viewstate.Terrain, hm *loader.Heightmap, u, v float32) sampleResult {
	raw := terrain.Bilinear(hm.Data, hm.Width, hm.Height, u, v)
	return sampleResult{
		U:     u,
		V:     v,
		Raw:   raw,
		World: t.HeightmapParams(false).WorldPosition(u, v, raw).Array(),
	}
}

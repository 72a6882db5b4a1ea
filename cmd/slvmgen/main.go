package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/mmrahman-utexas/slvm-data-generation/internal/config"
	"github.com/mmrahman-utexas/slvm-data-generation/internal/dataset"
	"github.com/mmrahman-utexas/slvm-data-generation/internal/render"
	"github.com/mmrahman-utexas/slvm-data-generation/internal/storage"
	"github.com/mmrahman-utexas/slvm-data-generation/internal/trajectory"
)

var (
	outDir         string
	numSteps       int
	numTrain       int
	numTest        int
	stride         int
	shuffle        bool
	seed           int64
	overwrite      bool
	resolution     int
	particleRadius float64
	workers        int
	configFile     string
	// inspect
	traceParticle int
	traceField    string
	// preview
	previewSteps int
	previewOut   string
	previewDelay int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "slvmgen",
		Short: "convert LAMMPS trajectories into sequence-learning datasets",
	}

	generateCmd := &cobra.Command{
		Use:   "generate [trajectory file]",
		Short: "build train/test splits from a trajectory dump",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&outDir, "out", config.DefaultOutDir, "output directory")
	generateCmd.Flags().IntVar(&numSteps, "num-steps", config.DefaultNumSteps, "timesteps per sequence window")
	generateCmd.Flags().IntVar(&numTrain, "num-train", config.DefaultNumTrain, "windows in the train split")
	generateCmd.Flags().IntVar(&numTest, "num-test", config.DefaultNumTest, "windows in the test split")
	generateCmd.Flags().IntVar(&stride, "dt", config.DefaultStride, "keep every dt-th timestep")
	generateCmd.Flags().BoolVar(&shuffle, "shuffle", true, "shuffle windows before splitting")
	generateCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "shuffle seed")
	generateCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing output")
	generateCmd.Flags().IntVar(&resolution, "resolution", config.DefaultResolution, "image edge in pixels")
	generateCmd.Flags().Float64Var(&particleRadius, "radius", config.DefaultParticleRadius, "particle radius in world units")
	generateCmd.Flags().IntVar(&workers, "workers", 0, "conversion workers (0 = all cpus)")
	generateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	inspectCmd := &cobra.Command{
		Use:   "inspect [trajectory file]",
		Short: "parse a trajectory and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().IntVar(&traceParticle, "particle", 0, "particle index for the coordinate trace")
	inspectCmd.Flags().StringVar(&traceField, "field", "x", "traced field (x, y, vx, vy, fx, fy)")

	previewCmd := &cobra.Command{
		Use:   "preview [trajectory file]",
		Short: "render the opening timesteps to an animated GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&previewSteps, "steps", 50, "timesteps to render")
	previewCmd.Flags().StringVar(&previewOut, "out", "preview.gif", "output GIF path")
	previewCmd.Flags().IntVar(&resolution, "resolution", config.DefaultResolution, "image edge in pixels")
	previewCmd.Flags().Float64Var(&particleRadius, "radius", config.DefaultParticleRadius, "particle radius in world units")
	previewCmd.Flags().IntVar(&previewDelay, "delay", 4, "frame delay in 1/100 s")

	rootCmd.AddCommand(generateCmd, inspectCmd, previewCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// mergeConfig applies config-file values for every flag the user did not
// set explicitly, so CLI flags always win over the file.
func mergeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = outDir
	}
	if cmd.Flags().Changed("num-steps") {
		cfg.NumSteps = numSteps
	}
	if cmd.Flags().Changed("num-train") {
		cfg.NumTrain = numTrain
	}
	if cmd.Flags().Changed("num-test") {
		cfg.NumTest = numTest
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = stride
	}
	if cmd.Flags().Changed("shuffle") {
		cfg.Shuffle = shuffle
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Overwrite = overwrite
	}
	if cmd.Flags().Changed("resolution") {
		cfg.Resolution = resolution
	}
	if cmd.Flags().Changed("radius") {
		cfg.ParticleRadius = particleRadius
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := mergeConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Printf("reading trajectory from %s\n", args[0])
	traj, err := trajectory.Parse(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("parsed %d timesteps, %d particles, box length %.4f\n",
		traj.NumFrames(), traj.NumParticles(), traj.BoxLength)

	conv := &dataset.Converter{
		BoxLength:  traj.BoxLength,
		Resolution: cfg.Resolution,
		Radius:     cfg.ParticleRadius,
	}
	asm, err := dataset.New(traj, conv, dataset.Params{
		WindowLen: cfg.NumSteps,
		NumTrain:  cfg.NumTrain,
		NumTest:   cfg.NumTest,
		Stride:    cfg.Dt,
		Shuffle:   cfg.Shuffle,
		Seed:      cfg.Seed,
		Workers:   cfg.Workers,
	})
	if err != nil {
		return err
	}

	w := storage.New(cfg.Out, cfg.Overwrite)
	meta := storage.Metadata{
		WindowLen:  cfg.NumSteps,
		StateDim:   4 * traj.NumParticles(),
		Resolution: cfg.Resolution,
		BoxLength:  traj.BoxLength,
		Stride:     cfg.Dt,
		Shuffled:   cfg.Shuffle,
		Seed:       cfg.Seed,
	}

	fmt.Println("writing the train split...")
	if err := w.WriteSplit("train", asm.Train(), meta); err != nil {
		return err
	}
	fmt.Println("writing the test split...")
	if err := w.WriteSplit("test", asm.Test(), meta); err != nil {
		return err
	}

	fmt.Printf("done: %d train + %d test windows (of %d) -> %s\n",
		cfg.NumTrain, cfg.NumTest, asm.NumWindows(), cfg.Out)
	return nil
}

var fieldIndex = map[string]int{
	"x":  trajectory.FieldX,
	"y":  trajectory.FieldY,
	"vx": trajectory.FieldVX,
	"vy": trajectory.FieldVY,
	"fx": trajectory.FieldFX,
	"fy": trajectory.FieldFY,
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func runInspect(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("trajectory summary"))
	fmt.Printf("%s %s\n", labelStyle.Render("file:"), args[0])
	fmt.Printf("%s %d\n", labelStyle.Render("timesteps:"), traj.NumFrames())
	fmt.Printf("%s %d\n", labelStyle.Render("particles:"), traj.NumParticles())
	fmt.Printf("%s %.6f\n", labelStyle.Render("box length:"), traj.BoxLength)
	if traj.Dropped > 0 {
		fmt.Printf("%s %d trailing lines (partial block, truncated)\n",
			labelStyle.Render("dropped:"), traj.Dropped)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("per-field statistics"))
	names := []string{"x", "y", "vx", "vy", "fx", "fy"}
	for f := 0; f < trajectory.NumFields; f++ {
		vals := make([]float64, 0, traj.NumFrames()*traj.NumParticles())
		for _, frame := range traj.Frames {
			for p := 0; p < traj.NumParticles(); p++ {
				vals = append(vals, frame.At(p, f))
			}
		}
		mean, std := stat.MeanStdDev(vals, nil)
		fmt.Printf("  %-3s mean %12.6f  std %12.6f\n", names[f], mean, std)
	}

	field, ok := fieldIndex[traceField]
	if !ok {
		return fmt.Errorf("unknown field %q (want one of x, y, vx, vy, fx, fy)", traceField)
	}
	if traceParticle < 0 || traceParticle >= traj.NumParticles() {
		return fmt.Errorf("particle index %d out of range [0, %d)", traceParticle, traj.NumParticles())
	}

	trace := make([]float64, traj.NumFrames())
	for t, frame := range traj.Frames {
		trace[t] = frame.At(traceParticle, field)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("particle %d %s trace", traceParticle, traceField)))
	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Height(10),
		asciigraph.Width(80),
	))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Parse(args[0])
	if err != nil {
		return err
	}
	steps := previewSteps
	if steps > traj.NumFrames() {
		steps = traj.NumFrames()
	}
	if steps == 0 {
		return fmt.Errorf("trajectory %s contains no complete timesteps", args[0])
	}

	positions := make([][]render.Point, steps)
	for t := 0; t < steps; t++ {
		frame := traj.Frames[t]
		pts := make([]render.Point, traj.NumParticles())
		for p := range pts {
			pts[p] = render.Point{
				X: frame.At(p, trajectory.FieldX),
				Y: frame.At(p, trajectory.FieldY),
			}
		}
		positions[t] = pts
	}

	frames, err := render.Sequence(positions, traj.BoxLength, render.Options{
		Resolution: resolution,
		Radius:     particleRadius,
		NumColors:  traj.NumParticles(),
	})
	if err != nil {
		return err
	}

	f, err := os.Create(previewOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := render.WriteGIF(f, frames, previewDelay); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", steps, previewOut)
	return nil
}

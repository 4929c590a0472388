// Package driver enumerates the instruction set, builds one fixture per
// family, validates it, and writes the fixture files.
package driver

import (
	"context"
	"io"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/catalog"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
	"github.com/ezrec/starjconf/structural"
)

const (
	DEFAULT_EXT   = ".asm"
	MANIFEST_NAME = "manifest.yaml"
)

// Job is one planned fixture.
type Job struct {
	Name   string   // Fixture name, also the output file stem.
	Covers []string // Mnemonics exercised.
	Oracle bool     // Built from the catalog by the value oracle.

	build func() (*asm.Program, error)
}

// Driver produces the fixture set.
type Driver struct {
	Log      *zap.Logger // Defaults to a no-op logger.
	FS       CreateFS    // Output filesystem.
	Dir      string      // Output directory below FS, created by Prepare.
	Ext      string      // Fixture file extension, defaults to DEFAULT_EXT.
	Jobs     int         // Parallel builders, zero or less for no limit.
	Only     []string    // Restrict to these fixtures or mnemonics.
	Manifest bool        // Also write MANIFEST_NAME.

	out CreateFS
}

func (d *Driver) log() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d *Driver) ext() string {
	if len(d.Ext) == 0 {
		return DEFAULT_EXT
	}
	return d.Ext
}

// oracleBuild renders the catalog fixture, which rejects any row that
// disagrees with the documented semantics.
func oracleBuild(inst isa.Instruction) func() (*asm.Program, error) {
	return func() (prog *asm.Program, err error) {
		cases, err := catalog.Cases(inst.Mnemonic)
		if err != nil {
			return
		}
		return oracle.Fixture(inst, cases)
	}
}

// Resolve plans the fixture for one family name.
func Resolve(name string, covers []string) (job Job, err error) {
	if len(covers) == 0 {
		err = isa.ErrInstructionUnknown(name)
		return
	}

	inst, err := isa.Lookup(covers[0])
	if err != nil {
		return
	}

	job = Job{Name: name, Covers: covers}
	if inst.Oracle() {
		job.Oracle = true
		job.build = oracleBuild(inst)
		return
	}

	gen, err := structural.Lookup(name)
	if err != nil {
		return
	}
	job.build = gen.Build
	return
}

// Plan resolves every fixture, in instruction table order followed by the
// structural generators that cover an extra operand form.
func (d *Driver) Plan() (jobs []Job, err error) {
	names, covers := isa.Families()
	for _, name := range names {
		var job Job
		job, err = Resolve(name, covers[name])
		if err != nil {
			return
		}
		jobs = append(jobs, job)
	}

	for gen := range structural.All() {
		if _, ok := covers[gen.Name]; ok {
			continue
		}
		jobs = append(jobs, Job{Name: gen.Name, Covers: gen.Covers, build: gen.Build})
	}

	if len(d.Only) == 0 {
		return
	}

	want := make(map[string]bool)
	for _, only := range d.Only {
		found := false
		for _, job := range jobs {
			if job.Name == only || slices.Contains(job.Covers, only) {
				found = true
				want[job.Name] = true
			}
		}
		if !found {
			err = ErrOnlyUnknown(only)
			return
		}
	}
	jobs = slices.DeleteFunc(jobs, func(job Job) bool {
		return !want[job.Name]
	})

	return
}

// Prepare creates the output directory. A nil FS is the working directory.
func (d *Driver) Prepare() (err error) {
	if d.FS == nil {
		d.FS = DirFS(".")
	}
	d.out, err = MkdirAll(d.FS, d.Dir)
	if err != nil {
		return
	}
	d.log().Debug("output prepared", zap.String("dir", d.Dir))
	return
}

// Build produces and validates the fixtures of a plan, in plan order.
func (d *Driver) Build(ctx context.Context, jobs []Job) (progs []*asm.Program, err error) {
	progs = make([]*asm.Program, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	if d.Jobs > 0 {
		eg.SetLimit(d.Jobs)
	}

	for n, job := range jobs {
		eg.Go(func() (err error) {
			defer func() {
				if err != nil {
					err = &ErrFixture{Name: job.Name, Err: err}
				}
			}()

			err = egCtx.Err()
			if err != nil {
				return
			}
			prog, err := job.build()
			if err != nil {
				return
			}
			prog.Name = job.Name
			err = prog.Validate()
			if err != nil {
				return
			}
			progs[n] = prog
			d.log().Debug("fixture built",
				zap.String("fixture", job.Name),
				zap.Strings("covers", job.Covers),
				zap.Int("statements", len(prog.Statements)))
			return
		})
	}

	err = eg.Wait()
	if err != nil {
		progs = nil
	}
	return
}

// write renders one file into the output directory.
func (d *Driver) write(name string, render func(w io.Writer) error) (err error) {
	file, err := d.out.Create(name)
	if err != nil {
		return
	}
	err = render(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return
}

// Run builds every planned fixture and writes it. The output is prepared
// only once every fixture has been built, if Prepare was not called.
func (d *Driver) Run(ctx context.Context) (written []string, err error) {
	jobs, err := d.Plan()
	if err != nil {
		return
	}

	progs, err := d.Build(ctx, jobs)
	if err != nil {
		return
	}

	if d.out == nil {
		err = d.Prepare()
		if err != nil {
			return
		}
	}

	var manifest Manifest
	for n, prog := range progs {
		name := prog.Name + d.ext()
		err = d.write(name, func(w io.Writer) error {
			return prog.Render(w)
		})
		if err != nil {
			err = &ErrFixture{Name: prog.Name, Err: err}
			return
		}
		written = append(written, name)
		manifest.Fixtures = append(manifest.Fixtures, NewManifestEntry(jobs[n], name, prog))
	}

	if d.Manifest {
		err = d.write(MANIFEST_NAME, func(w io.Writer) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(&manifest); err != nil {
				return err
			}
			return enc.Close()
		})
		if err != nil {
			return
		}
		written = append(written, MANIFEST_NAME)
	}

	d.log().Info("fixtures written",
		zap.String("dir", d.Dir),
		zap.Int("fixtures", len(progs)))

	return
}

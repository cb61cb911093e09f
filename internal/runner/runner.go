// Package runner executes growlist scripts against a container and collects
// their transcripts.
package runner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vajrock/growlist/container"
	"github.com/vajrock/growlist/internal/config"
	"github.com/vajrock/growlist/internal/script"
)

// TranscriptSuffix is appended to a script path when transcripts are written
// to disk.
const TranscriptSuffix = ".out"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Runner orchestrates parsing and execution of scripts.
type Runner struct {
	config *config.Config
}

// NewRunner creates a new Runner with the given configuration.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg}
}

// Result contains the result of running a script.
type Result struct {
	// FilePath is the path to the processed script.
	FilePath string

	// RunID identifies this run in logs.
	RunID uuid.UUID

	// Ops is the number of operations executed.
	Ops int

	// Failures is the number of operations that returned an error.
	Failures int

	// Stats accumulates the growth work of every container the script used.
	Stats container.Stats

	// Transcript is the script output.
	Transcript []byte

	// Error is any error that prevented the script from running.
	Error error
}

// ProcessFile reads, parses and runs a single script.
func (r *Runner) ProcessFile(filePath string) *Result {
	result := &Result{
		FilePath: filePath,
		RunID:    uuid.New(),
	}

	// Read the file
	src, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = errors.Wrap(err, "failed to read file")
		return result
	}

	return r.run(result, src)
}

// ProcessSource runs a script held in memory. filePath is used in messages only.
func (r *Runner) ProcessSource(filePath string, src []byte) *Result {
	return r.run(&Result{
		FilePath: filePath,
		RunID:    uuid.New(),
	}, src)
}

// ProcessDirectory runs all scripts in a directory tree.
func (r *Runner) ProcessDirectory(dirPath string) []*Result {
	var results []*Result

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip vendor and hidden directories
		if info.IsDir() {
			if path != dirPath && (info.Name() == "vendor" || (len(info.Name()) > 0 && info.Name()[0] == '.')) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != r.config.Extension {
			return nil
		}

		results = append(results, r.ProcessFile(path))
		return nil
	})

	if err != nil {
		results = append(results, &Result{
			FilePath: dirPath,
			RunID:    uuid.New(),
			Error:    errors.Wrap(err, "failed to walk directory"),
		})
	}

	return results
}

// WriteResult writes the transcript next to the script when Write is set,
// and to w otherwise.
func (r *Runner) WriteResult(w io.Writer, result *Result) error {
	if result.Error != nil {
		return nil
	}

	if r.config.Write {
		path := result.FilePath + TranscriptSuffix
		if err := os.WriteFile(path, result.Transcript, 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "# %s\n", result.FilePath); err != nil {
		return err
	}
	_, err := w.Write(result.Transcript)
	return err
}

func (r *Runner) run(result *Result, src []byte) *Result {
	s, report := script.Parse(result.FilePath, src)
	if report.HasProblems() {
		result.Error = errors.Wrap(report.Err(), "failed to parse script")
		return result
	}

	var out bytes.Buffer
	e := &execution{
		opts: r.config.ContainerOptions(),
		out:  &out,
	}
	e.c = container.New[string](e.opts...)

	for _, op := range s.Ops {
		fmt.Fprintf(&out, "> %s\n", op)
		result.Ops++
		if err := e.exec(op); err != nil {
			result.Failures++
			fmt.Fprintf(&out, "error: %v\n", err)
		}
	}
	e.retire()

	result.Stats = e.stats
	result.Transcript = out.Bytes()
	return result
}

// execution is the state of one script run.
type execution struct {
	opts  container.Options
	c     *container.Container[string]
	out   io.Writer
	stats container.Stats
}

func (e *execution) exec(op *script.Op) error {
	switch op.Kind {
	case config.OpNew:
		e.retire()
		if op.HasIndex {
			e.c = container.WithCapacity[string](op.Index, e.opts...)
		} else {
			e.c = container.New[string](e.opts...)
		}
	case config.OpAppend:
		e.c.Append(op.Value)
	case config.OpInsert:
		return e.c.Insert(op.Value, op.Index)
	case config.OpRemoveAt:
		return e.c.RemoveAt(op.Index)
	case config.OpRemove:
		e.println("removed " + strconv.Itoa(e.c.RemoveValue(op.Value)))
	case config.OpGet:
		occupied, err := e.c.Occupied(op.Index)
		if err != nil {
			return err
		}
		if !occupied {
			e.println("<empty>")
			return nil
		}
		v, err := e.c.Get(op.Index)
		if err != nil {
			return err
		}
		e.println(script.Quote(v))
	case config.OpSet:
		return e.c.Set(op.Value, op.Index)
	case config.OpIndexOf:
		e.println(strconv.Itoa(e.c.IndexOf(op.Value)))
	case config.OpLength:
		e.println(strconv.Itoa(e.c.Length()))
	case config.OpLen:
		e.println(strconv.Itoa(e.c.Len()))
	case config.OpCap:
		e.println(strconv.Itoa(e.c.Cap()))
	case config.OpRender:
		s, err := e.c.Render()
		if err != nil {
			return err
		}
		e.println(s)
	case config.OpDump:
		dumpConfig.Fdump(e.out, e.c)
	default:
		return errors.Errorf("unsupported operation %s", op.Kind)
	}
	return nil
}

// retire adds the current container's growth work to the run totals.
func (e *execution) retire() {
	st := e.c.Stats()
	e.stats.Grows += st.Grows
	e.stats.SlotsCopied += st.SlotsCopied
}

func (e *execution) println(s string) {
	fmt.Fprintln(e.out, s)
}

package visdiff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Status is the verdict of one golden check.
type Status uint8

const (
	// Passed means the captured image matched the golden under the policy.
	Passed Status = iota

	// Failed means the images disagreed beyond the policy's limits.
	Failed

	// Generated means no golden existed (or regeneration was requested) and
	// the captured image was accepted as the new golden.
	Generated
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Generated:
		return "generated"
	default:
		return "unknown"
	}
}

// Policy selects how a captured image is judged against its golden.
//
// When MaxDiffPercent is positive the breadth-based CompareFuzzyPercent
// policy applies and Tolerance is ignored for the verdict (it still shapes
// the diff rendering). Otherwise CompareFuzzy runs with Tolerance, and a
// zero value gives exact comparison.
type Policy struct {
	// Tolerance is the maximum per-channel difference a pixel may show
	// before counting as different.
	Tolerance uint8

	// MaxDiffPercent, when > 0, allows up to this percentage of pixels to
	// differ by any amount.
	MaxDiffPercent float64
}

// Compare applies the policy to a golden/captured pair.
func (p Policy) Compare(golden, got *Image) Result {
	if p.MaxDiffPercent > 0 {
		return CompareFuzzyPercent(golden, got, p.MaxDiffPercent)
	}
	return CompareFuzzy(golden, got, p.Tolerance)
}

// Outcome is the full result of one golden check, including the paths of
// any artifacts written.
type Outcome struct {
	Status Status
	Result Result

	// GoldenPath is the reference image path for this check.
	GoldenPath string

	// FailurePath and DiffPath are set when a failing check saved its
	// captured image and rendered diff.
	FailurePath string
	DiffPath    string
}

// Golden manages a directory of reference images.
//
// Goldens persist across runs: a check against a missing golden accepts the
// captured image and writes it, and later runs compare against it read-only
// until regeneration is explicitly requested.
type Golden struct {
	// Dir is the reference directory. Created on first use.
	Dir string

	// Regenerate, when set, overwrites goldens with the captured images
	// instead of comparing.
	Regenerate bool

	// SaveFailures, when set, writes "<name>_fail.png" and "<name>_diff.png"
	// next to the golden when a check fails.
	SaveFailures bool

	// Policy is the comparison policy for every check.
	Policy Policy
}

// Path returns the golden file path for a check name.
func (g *Golden) Path(name string) string {
	return filepath.Join(g.Dir, name+".png")
}

// Check evaluates a captured image against the named golden.
//
// If the golden is missing or Regenerate is set, the captured image becomes
// the golden and the outcome is Generated. Otherwise the two are compared
// under the policy; a mismatch yields a Failed outcome, not an error.
// Errors are reserved for filesystem failures and corrupt goldens.
func (g *Golden) Check(name string, got *Image) (Outcome, error) {
	out := Outcome{GoldenPath: g.Path(name)}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return out, fmt.Errorf("visdiff: create golden dir: %w", err)
	}

	if g.Regenerate || !g.goldenExists(name) {
		if err := got.Save(out.GoldenPath); err != nil {
			return out, err
		}
		Logger().Info("golden generated",
			"name", name, "path", out.GoldenPath, "regenerated", g.Regenerate)
		out.Status = Generated
		out.Result = Result{Match: true, Message: "golden generated"}
		return out, nil
	}

	golden, err := Load(out.GoldenPath)
	if err != nil {
		return out, err
	}

	out.Result = g.Policy.Compare(golden, got)
	if out.Result.Match {
		out.Status = Passed
		return out, nil
	}

	out.Status = Failed
	Logger().Debug("golden mismatch", "name", name, "message", out.Result.Message)

	if g.SaveFailures {
		out.FailurePath = filepath.Join(g.Dir, name+"_fail.png")
		out.DiffPath = filepath.Join(g.Dir, name+"_diff.png")

		if err := got.Save(out.FailurePath); err != nil {
			return out, err
		}
		diff := RenderDiff(golden, got, g.Policy.Tolerance)
		if err := diff.Save(out.DiffPath); err != nil {
			return out, err
		}
		Logger().Info("failure artifacts saved",
			"name", name, "captured", out.FailurePath, "diff", out.DiffPath)
	}

	return out, nil
}

func (g *Golden) goldenExists(name string) bool {
	_, err := os.Stat(g.Path(name))
	return !errors.Is(err, fs.ErrNotExist)
}

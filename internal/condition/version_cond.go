package condition

import (
	"regexp"
	"strings"

	"github.com/growthbook/growthbook-go/internal/value"
)

// VersionCond compares version strings. Versions are normalized to
// padded strings so that plain lexicographic comparison orders them
// correctly.
type VersionCond struct {
	op      Operator
	version string
}

func NewVersionCond(op Operator, arg any) VersionCond {
	return VersionCond{op, paddedVersionString(value.New(arg))}
}

func (c VersionCond) Eval(actual value.Value, _ SavedGroups) bool {
	v := paddedVersionString(actual)
	switch c.op {
	case veqOp:
		return v == c.version
	case vneOp:
		return v != c.version
	case vgtOp:
		return v > c.version
	case vgteOp:
		return v >= c.version
	case vltOp:
		return v < c.version
	case vlteOp:
		return v <= c.version
	}
	return false
}

var (
	versionStripRe = regexp.MustCompile(`(^v|\+.*$)`)
	versionSplitRe = regexp.MustCompile(`[-.]`)
	versionNumRe   = regexp.MustCompile(`^[0-9]+$`)
)

// paddedVersionString strips any leading "v" and build metadata,
// splits on "." and "-", appends "~" to plain SemVer versions so
// that "1.0.0" sorts after "1.0.0-beta", and left-pads numeric parts
// to width 5 so that " 9" < "10".
func paddedVersionString(input value.Value) string {
	var version string
	switch v := input.(type) {
	case value.NumValue, value.StrValue:
		version = v.String()
	}
	if version == "" {
		version = "0"
	}
	version = versionStripRe.ReplaceAllString(version, "")
	parts := versionSplitRe.Split(version, -1)
	if len(parts) == 3 {
		parts = append(parts, "~")
	}
	for i, p := range parts {
		if versionNumRe.MatchString(p) && len(p) < 5 {
			val := strings.TrimLeft(p, "0")
			parts[i] = strings.Repeat(" ", 5-len(val)) + val
		}
	}
	return strings.Join(parts, "-")
}
